package handler

import "newsroom/internal/model"

type ArticleResponse struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Content     string `json:"content,omitempty"`
}

type FeedResponse struct {
	Username     string            `json:"username"`
	Subtitle     string            `json:"subtitle,omitempty"`
	ShowLatest   bool              `json:"show_latest"`
	Articles     []ArticleResponse `json:"articles"`
	TopHeadlines []ArticleResponse `json:"top_headlines"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
}

type ArticleDetailResponse struct {
	Article ArticleResponse `json:"article"`
	Summary string          `json:"summary"`
}

type FavoriteResponse struct {
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
	Author      string `json:"author"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url"`
}

type FavoritesPageResponse struct {
	Username     string             `json:"username"`
	Favorites    []FavoriteResponse `json:"favorites"`
	Page         int                `json:"page"`
	TotalPages   int                `json:"total_pages"`
	HasFavorites bool               `json:"has_favorites"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toArticleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		Title:       a.Title,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Content:     a.Content,
	}
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		res[i] = toArticleResponse(a)
	}
	return res
}

func toFavoriteResponse(f model.Favorite) FavoriteResponse {
	return FavoriteResponse{
		Title:       f.Title,
		PublishedAt: f.PublishedAt,
		Author:      f.Author,
		Summary:     f.Summary,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		URL:         f.URL,
	}
}
