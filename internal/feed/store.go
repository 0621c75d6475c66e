package feed

import (
	"errors"
	"sync"

	"newsroom/internal/model"
)

// SummaryEmpty marks a slot whose summary has not been generated yet. It is a
// sentinel, never a valid summary.
const SummaryEmpty = "Empty"

const (
	SearchCap = 50
	TopCap    = 7
)

type Slot string

const (
	SlotSearch Slot = "search"
	SlotTop    Slot = "top"
)

var ErrIndexRange = errors.New("article index out of range")

// Generator produces a summary for an article URL.
type Generator func(url string, minWords int) (string, error)

// ResultStore holds the current search and top-headline result sets plus their
// per-position summary slots. It is process-wide and shared across sessions:
// a new fetch replaces the whole set, so older indices become invalid or point
// at different articles, and one user's search replaces the current search for
// everyone. The mutex keeps the slices consistent under concurrent requests;
// it does not serialize summary generation (see GetOrCreateSummary).
type ResultStore struct {
	mu        sync.RWMutex
	sets      map[Slot][]model.Article
	summaries map[Slot][]string
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		sets:      make(map[Slot][]model.Article),
		summaries: make(map[Slot][]string),
	}
}

func (s *ResultStore) ReplaceSearch(articles []model.Article) {
	s.replace(SlotSearch, articles, SearchCap)
}

func (s *ResultStore) ReplaceTop(articles []model.Article) {
	s.replace(SlotTop, articles, TopCap)
}

func (s *ResultStore) replace(slot Slot, articles []model.Article, max int) {
	if len(articles) > max {
		articles = articles[:max]
	}

	set := make([]model.Article, len(articles))
	copy(set, articles)

	// Summary slots are reset together with the set they describe, otherwise
	// a stale summary would surface under a new article at the same index.
	summaries := make([]string, len(set))
	for i := range summaries {
		summaries[i] = SummaryEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[slot] = set
	s.summaries[slot] = summaries
}

func (s *ResultStore) Get(slot Slot, index int) (model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.sets[slot]
	if index < 0 || index >= len(set) {
		return model.Article{}, ErrIndexRange
	}
	return set[index], nil
}

func (s *ResultStore) Len(slot Slot) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets[slot])
}

// Articles returns a copy of the current set, safe to slice and hold across
// a subsequent replacement.
func (s *ResultStore) Articles(slot Slot) []model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.sets[slot]
	out := make([]model.Article, len(set))
	copy(out, set)
	return out
}

// GetOrCreateSummary returns the memoized summary for a position, generating
// it on first access. The generator runs outside the lock, so two concurrent
// first visits to the same position may both generate; the last write wins.
// If the set was replaced while generating, the result is returned to the
// caller but not stored.
func (s *ResultStore) GetOrCreateSummary(slot Slot, index, minWords int, gen Generator) (string, error) {
	s.mu.RLock()
	set := s.sets[slot]
	summaries := s.summaries[slot]
	if index < 0 || index >= len(set) {
		s.mu.RUnlock()
		return "", ErrIndexRange
	}
	if summaries[index] != SummaryEmpty {
		stored := summaries[index]
		s.mu.RUnlock()
		return stored, nil
	}
	articleURL := set[index].URL
	s.mu.RUnlock()

	summary, err := gen(articleURL, minWords)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if cur := s.summaries[slot]; index < len(cur) && s.sets[slot][index].URL == articleURL {
		cur[index] = summary
	}
	s.mu.Unlock()

	return summary, nil
}
