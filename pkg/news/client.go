package news

// RawArticle is a provider record before validation. Any field may be empty;
// the feed layer decides which ones are required.
type RawArticle struct {
	Title       string
	Author      string
	Description string
	URL         string
	ImageURL    string
	PublishedAt string
	Content     string
}

type Searcher interface {
	Search(query string) ([]RawArticle, error)
	Name() string
}

type HeadlineFetcher interface {
	TopHeadlines() ([]RawArticle, error)
	Name() string
}
