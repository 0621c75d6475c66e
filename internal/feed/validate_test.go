package feed

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"newsroom/pkg/news"
)

func TestFilterValid(t *testing.T) {
	articles := []news.RawArticle{
		{
			Title:       "Complete Story - Reuters",
			Author:      "Jane Doe",
			URL:         "https://example.com/a",
			PublishedAt: "2026-02-26T11:02:00Z",
			Content:     "body",
			Description: "desc",
			ImageURL:    "https://example.com/a.jpg",
		},
		{
			Title:       "No Author",
			URL:         "https://example.com/b",
			PublishedAt: "2026-02-26T11:02:00Z",
			Content:     "body",
			Description: "desc",
			ImageURL:    "https://example.com/b.jpg",
		},
		{
			Title:       "No Image",
			Author:      "John Doe",
			URL:         "https://example.com/c",
			PublishedAt: "2026-02-26T11:02:00Z",
			Content:     "body",
			Description: "desc",
		},
	}

	valid := FilterValid(articles, SearchFields)

	assert.Equal(t, 1, len(valid))
	assert.Equal(t, "https://example.com/a", valid[0].URL)
}

func TestFilterValidHeadlineFields(t *testing.T) {
	articles := []news.RawArticle{
		{
			Title:       "Headline Without Image",
			Author:      "Staff",
			PublishedAt: "2026-02-26T10:00:00Z",
			Description: "desc",
		},
		{
			Title:       "Headline Without Description",
			Author:      "Staff",
			PublishedAt: "2026-02-26T10:00:00Z",
		},
	}

	// Headlines do not require url, image or content.
	valid := FilterValid(articles, HeadlineFields)

	assert.Equal(t, 1, len(valid))
	assert.Equal(t, "Headline Without Image", valid[0].Title)
}

func TestFilterValidEmptyInput(t *testing.T) {
	valid := FilterValid(nil, SearchFields)
	assert.Equal(t, 0, len(valid))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       news.RawArticle
		wantTitle string
		wantDate  string
	}{
		{
			name:      "strips source suffix and truncates date",
			raw:       news.RawArticle{Title: "Climate Talks Resume - Reuters", PublishedAt: "2026-02-26T11:02:00Z"},
			wantTitle: "Climate Talks Resume",
			wantDate:  "2026-02-26",
		},
		{
			name:      "title without dash unchanged",
			raw:       news.RawArticle{Title: "Markets Open Higher", PublishedAt: "2026-02-26T10:00:00Z"},
			wantTitle: "Markets Open Higher",
			wantDate:  "2026-02-26",
		},
		{
			name:      "cuts at the first dash only",
			raw:       news.RawArticle{Title: "A - B - C", PublishedAt: "2026-02-26T10:00:00Z"},
			wantTitle: "A",
			wantDate:  "2026-02-26",
		},
		{
			name:      "short date unchanged",
			raw:       news.RawArticle{Title: "Short", PublishedAt: "2026-02-26"},
			wantTitle: "Short",
			wantDate:  "2026-02-26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]news.RawArticle{tt.raw})
			assert.Equal(t, 1, len(got))
			assert.Equal(t, tt.wantTitle, got[0].Title)
			assert.Equal(t, tt.wantDate, got[0].PublishedAt)
		})
	}
}
