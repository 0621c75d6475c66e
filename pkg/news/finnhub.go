package news

import (
	"context"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnHubClient serves top headlines from finnhub's general market news feed.
// Finnhub has no free-text search, so it only implements HeadlineFetcher.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) TopHeadlines() ([]RawArticle, error) {
	res, _, err := c.client.MarketNews(context.Background()).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	var articles []RawArticle

	for _, news := range res {
		var a RawArticle

		if news.Headline != nil {
			a.Title = *news.Headline
		}

		if news.Summary != nil {
			a.Description = *news.Summary
		}

		if news.Url != nil {
			a.URL = *news.Url
		}

		if news.Image != nil {
			a.ImageURL = *news.Image
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0).UTC().Format(time.RFC3339)
		}

		// Finnhub reports no author; the publishing source is the closest thing.
		if news.Source != nil {
			a.Author = *news.Source
		}

		articles = append(articles, a)
	}

	return articles, nil
}
