package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"newsroom/db"
	"newsroom/internal/feed"
	"newsroom/internal/handler"
	"newsroom/internal/repository"
	"newsroom/internal/session"
	"newsroom/pkg/llm"
	"newsroom/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	newsKey := os.Getenv("NEWSAPI_KEY")
	if newsKey == "" {
		log.Fatal("NEWSAPI_KEY environment variable is not set")
	}
	newsClient := news.NewNewsAPIClient(newsKey)

	var headlines news.HeadlineFetcher = newsClient
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		headlines = news.NewFinnHubClient(key)
	}

	var summarizer handler.Summarizer
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		summarizer = llm.NewAnthropicClient(key)
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		summarizer = llm.NewOpenAIClient(key)
	} else {
		log.Fatal("no summarizer API key configured")
	}

	users := repository.NewUserRepository(db.DB)
	sessions := session.NewStore(db.Redis)
	store := feed.NewResultStore()

	authHandler := handler.NewAuthHandler(users, sessions)
	feedHandler := handler.NewFeedHandler(store, newsClient, headlines, summarizer, sessions)
	favoriteHandler := handler.NewFavoriteHandler(users)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/health", authHandler.Health)

	protected := r.Group("/", handler.RequireAuth(sessions))
	protected.GET("/main-page", feedHandler.MainPage)
	protected.POST("/main-page", feedHandler.MainPage)
	protected.GET("/article/:index", feedHandler.Article)
	protected.GET("/top-article/:index", feedHandler.TopArticle)
	protected.GET("/favorite-article/:index", favoriteHandler.FavoriteArticle)
	protected.POST("/add-favorite", favoriteHandler.AddFavorite)
	protected.POST("/remove-favorite", favoriteHandler.RemoveFavorite)
	protected.GET("/user-page", favoriteHandler.UserPage)
	protected.POST("/update-profile", authHandler.UpdateProfile)
	protected.POST("/logout", authHandler.Logout)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	err = r.Run(addr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
