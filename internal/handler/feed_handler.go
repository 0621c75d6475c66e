package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom/internal/feed"
	"newsroom/pkg/news"
)

const (
	pageSize        = 10
	summaryMinWords = 100
)

type Summarizer interface {
	Summarize(url string, minWords int) (string, error)
}

type FeedHandler struct {
	store      *feed.ResultStore
	searcher   news.Searcher
	headlines  news.HeadlineFetcher
	summarizer Summarizer
	sessions   SessionStore
}

func NewFeedHandler(store *feed.ResultStore, searcher news.Searcher, headlines news.HeadlineFetcher, summarizer Summarizer, sessions SessionStore) *FeedHandler {
	return &FeedHandler{
		store:      store,
		searcher:   searcher,
		headlines:  headlines,
		summarizer: summarizer,
		sessions:   sessions,
	}
}

// MainPage serves the listing: a paginated search result set when a query is
// active, plus the top-headline strip. A POSTed query becomes the session's
// last query; paging through GET reuses it; a bare GET clears it.
func (h *FeedHandler) MainPage(c *gin.Context) {
	sess := currentSession(c)
	ctx := c.Request.Context()
	page := getQueryPage(c)

	var query string
	switch {
	case c.Request.Method == http.MethodPost:
		query = strings.TrimSpace(c.PostForm("query"))
		if err := h.sessions.SetLastQuery(ctx, sess.ID, query); err != nil {
			slog.Error("error storing last query", "error", err)
		}
	case c.Query("page") != "" && sess.LastQuery != "":
		query = sess.LastQuery
	default:
		if err := h.sessions.ClearLastQuery(ctx, sess.ID); err != nil {
			slog.Error("error clearing last query", "error", err)
		}
	}

	res := FeedResponse{
		Username:     sess.Username,
		Articles:     []ArticleResponse{},
		TopHeadlines: []ArticleResponse{},
		Page:         page,
		TotalPages:   1,
	}

	if query != "" {
		raw, err := h.searcher.Search(query)
		if err != nil {
			slog.Error("error searching articles", "query", query, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "news provider unavailable"})
			return
		}

		h.store.ReplaceSearch(feed.Normalize(feed.FilterValid(raw, feed.SearchFields)))

		all := h.store.Articles(feed.SlotSearch)
		res.Articles = toArticleResponses(feed.Paginate(all, page, pageSize))
		res.TotalPages = feed.TotalPages(len(all), pageSize)
		res.ShowLatest = true
		res.Subtitle = fmt.Sprintf("Results for '%s'", query)
	}

	rawTop, err := h.headlines.TopHeadlines()
	if err != nil {
		slog.Error("error fetching top headlines", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "news provider unavailable"})
		return
	}

	h.store.ReplaceTop(feed.Normalize(feed.FilterValid(rawTop, feed.HeadlineFields)))
	res.TopHeadlines = toArticleResponses(h.store.Articles(feed.SlotTop))

	c.JSON(http.StatusOK, res)
}

// Article serves the detail view for a search result by its position in the
// current set, generating the summary on first visit.
func (h *FeedHandler) Article(c *gin.Context) {
	h.articleDetail(c, feed.SlotSearch)
}

// TopArticle is the detail view for a top headline.
func (h *FeedHandler) TopArticle(c *gin.Context) {
	h.articleDetail(c, feed.SlotTop)
}

func (h *FeedHandler) articleDetail(c *gin.Context, slot feed.Slot) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		slog.Error("invalid article index", "index", c.Param("index"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article index"})
		return
	}

	article, err := h.store.Get(slot, index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	summary, err := h.store.GetOrCreateSummary(slot, index, summaryMinWords, h.summarizer.Summarize)
	if err != nil {
		if errors.Is(err, feed.ErrIndexRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		slog.Error("error generating summary", "url", article.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "summarizer unavailable"})
		return
	}

	c.JSON(http.StatusOK, ArticleDetailResponse{
		Article: toArticleResponse(article),
		Summary: summary,
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", 1, c)
	if page < 1 {
		slog.Warn("invalid query parameter, using default", "param", "page", "value", page, "default", 1)
		return 1
	}
	return page
}
