package llm

import (
	"strings"
	"testing"
)

func TestSummaryPrompt(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		minWords int
		contains []string
	}{
		{
			name:     "url and word count present",
			url:      "https://example.com/story",
			minWords: 100,
			contains: []string{"https://example.com/story", "100 words"},
		},
		{
			name:     "different word count",
			url:      "https://example.com/other",
			minWords: 250,
			contains: []string{"250 words"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summaryPrompt(tt.url, tt.minWords)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("prompt %q missing %q", got, want)
				}
			}
		})
	}
}
