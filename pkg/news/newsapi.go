package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	searchPageSize   = 100
	headlinePageSize = 30
)

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Search(query string) ([]RawArticle, error) {
	endpoint := fmt.Sprintf(
		"https://newsapi.org/v2/everything?q=%s&language=en&sortBy=relevancy&pageSize=%d&apiKey=%s",
		url.QueryEscape(query), searchPageSize, c.apiKey,
	)
	return c.fetch(endpoint)
}

func (c *NewsAPIClient) TopHeadlines() ([]RawArticle, error) {
	endpoint := fmt.Sprintf(
		"https://newsapi.org/v2/top-headlines?language=en&pageSize=%d&apiKey=%s",
		headlinePageSize, c.apiKey,
	)
	return c.fetch(endpoint)
}

func (c *NewsAPIClient) fetch(endpoint string) ([]RawArticle, error) {
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", raw.Message)
	}

	articles := make([]RawArticle, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, RawArticle{
			Title:       item.Title,
			Author:      item.Author,
			Description: item.Description,
			URL:         item.URL,
			ImageURL:    item.URLToImage,
			PublishedAt: item.PublishedAt,
			Content:     item.Content,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}
