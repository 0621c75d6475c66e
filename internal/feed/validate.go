package feed

import (
	"strings"

	"github.com/samber/lo"

	"newsroom/internal/model"
	"newsroom/pkg/news"
)

// Required field sets for the two result sets. Names follow the provider's
// JSON keys.
var (
	SearchFields   = []string{"title", "author", "url", "publishedAt", "content", "description", "urlToImage"}
	HeadlineFields = []string{"title", "author", "publishedAt", "description"}
)

// FilterValid keeps only records where every required field is non-empty.
func FilterValid(articles []news.RawArticle, required []string) []news.RawArticle {
	return lo.Filter(articles, func(a news.RawArticle, _ int) bool {
		return lo.EveryBy(required, func(field string) bool {
			return fieldValue(a, field) != ""
		})
	})
}

// Normalize converts validated provider records into display articles: the
// title loses the " - Source" suffix many providers append, and the publish
// timestamp is truncated to its calendar day.
func Normalize(articles []news.RawArticle) []model.Article {
	return lo.Map(articles, func(a news.RawArticle, _ int) model.Article {
		return model.Article{
			Title:       normalizeTitle(a.Title),
			Author:      a.Author,
			PublishedAt: normalizeDate(a.PublishedAt),
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			Content:     a.Content,
		}
	})
}

func fieldValue(a news.RawArticle, field string) string {
	switch field {
	case "title":
		return a.Title
	case "author":
		return a.Author
	case "description":
		return a.Description
	case "url":
		return a.URL
	case "urlToImage":
		return a.ImageURL
	case "publishedAt":
		return a.PublishedAt
	case "content":
		return a.Content
	default:
		return ""
	}
}

func normalizeTitle(title string) string {
	before, _, _ := strings.Cut(title, "-")
	return strings.TrimSpace(before)
}

func normalizeDate(publishedAt string) string {
	if len(publishedAt) > 10 {
		return publishedAt[:10]
	}
	return publishedAt
}
