package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsroom/internal/feed"
	"newsroom/internal/model"
)

type FavoriteStore interface {
	FindByUsername(username string) (*model.User, error)
	AddFavorite(userID int64, fav *model.Favorite) (bool, error)
	RemoveFavorite(userID int64, url string) error
	ListFavorites(userID int64) ([]model.Favorite, error)
}

type FavoriteHandler struct {
	users FavoriteStore
}

func NewFavoriteHandler(users FavoriteStore) *FavoriteHandler {
	return &FavoriteHandler{users: users}
}

type AddFavoriteRequest struct {
	Title       string `form:"title" json:"title"`
	PublishedAt string `form:"published_at" json:"published_at"`
	Author      string `form:"author" json:"author"`
	Summary     string `form:"summary" json:"summary"`
	Description string `form:"description" json:"description"`
	ImageURL    string `form:"image_url" json:"image_url"`
	URL         string `form:"url" json:"url" binding:"required"`
}

// AddFavorite persists a snapshot of the posted article. Saving a URL the
// user already favorited is a silent no-op.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	fav := &model.Favorite{
		Title:       req.Title,
		PublishedAt: req.PublishedAt,
		Author:      req.Author,
		Summary:     req.Summary,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
	}

	saved, err := h.users.AddFavorite(user.ID, fav)
	if err != nil {
		slog.Error("error saving favorite", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !saved {
		slog.Info("duplicate favorite skipped", "username", user.Username, "url", req.URL)
	}

	c.Redirect(http.StatusFound, backLocation(c))
}

// RemoveFavorite deletes by URL. Removing an absent URL still redirects as a
// success.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	url := c.PostForm("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "This field is required."}})
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := h.users.RemoveFavorite(user.ID, url); err != nil {
		slog.Error("error removing favorite", "url", url, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Redirect(http.StatusFound, "/main-page")
}

// FavoriteArticle is the detail view for a stored favorite; the summary was
// captured at save time, nothing is generated here.
func (h *FavoriteHandler) FavoriteArticle(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		slog.Error("invalid favorite index", "index", c.Param("index"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article index"})
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	favorites, err := h.users.ListFavorites(user.ID)
	if err != nil {
		slog.Error("error fetching favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if index < 0 || index >= len(favorites) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toFavoriteResponse(favorites[index]))
}

// UserPage lists the user's favorites a page at a time.
func (h *FavoriteHandler) UserPage(c *gin.Context) {
	page := getQueryPage(c)

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	favorites, err := h.users.ListFavorites(user.ID)
	if err != nil {
		slog.Error("error fetching favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	pageItems := feed.Paginate(favorites, page, pageSize)
	res := FavoritesPageResponse{
		Username:     user.Username,
		Favorites:    make([]FavoriteResponse, 0, len(pageItems)),
		Page:         page,
		TotalPages:   feed.TotalPages(len(favorites), pageSize),
		HasFavorites: len(favorites) > 0,
	}

	for _, f := range pageItems {
		res.Favorites = append(res.Favorites, toFavoriteResponse(f))
	}

	c.JSON(http.StatusOK, res)
}

func (h *FavoriteHandler) resolveUser(c *gin.Context) (*model.User, bool) {
	sess := currentSession(c)

	user, err := h.users.FindByUsername(sess.Username)
	if err != nil {
		slog.Error("error fetching user", "username", sess.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return nil, false
	}

	return user, true
}

func backLocation(c *gin.Context) string {
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	return "/main-page"
}
