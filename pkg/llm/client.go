package llm

import "fmt"

type Summarizer interface {
	Summarize(url string, minWords int) (string, error)
}

const summarySystemPrompt = `You are a news editor. Given the URL of a news article, read it and write a summary for a general audience.

Rules:
1. Neutral tone, no editorializing
2. Keep all facts: numbers, names, dates, places
3. Plain prose, no headings, no bullet points
4. At least the requested number of words

Output the summary text only, no other text.`

func summaryPrompt(url string, minWords int) string {
	return fmt.Sprintf("Article URL: %s\nMinimum length: %d words", url, minWords)
}
