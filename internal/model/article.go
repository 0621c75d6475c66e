package model

// Article is one normalized provider record held in the in-memory result sets.
// Title is cut at the provider's " - Source" suffix and PublishedAt is
// truncated to the calendar day (YYYY-MM-DD).
type Article struct {
	Title       string
	Author      string
	PublishedAt string
	Description string
	URL         string
	ImageURL    string
	Content     string
}
