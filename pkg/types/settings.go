package types

import (
	"slices"
	"sync"
)

type Settings struct {
	mu              sync.RWMutex
	DefaultSort     SortKey   `json:"defaultSort"`
	PopularityRules JsonTypes `json:"popularityRules"`
}

func DefaultSettings() *Settings {
	return &Settings{
		DefaultSort:     DefaultSort,
		PopularityRules: DefaultPopularityRules(),
	}
}

// Rules returns the configured popularity rules, falling back to the
// defaults when none are configured.
func (s *Settings) Rules() []ItemPopularityRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.PopularityRules) == 0 {
		return FromJsonTypes[ItemPopularityRule](DefaultPopularityRules())
	}
	return FromJsonTypes[ItemPopularityRule](s.PopularityRules)
}

func (s *Settings) GetDefaultSort() SortKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := ParseSortKey(string(s.DefaultSort)); err != nil {
		return DefaultSort
	}
	return s.DefaultSort
}

// Replace copies the sort default and rules of other into s. An invalid
// default sort is rejected and leaves s unchanged.
func (s *Settings) Replace(other *Settings) error {
	other.RLock()
	defaultSort := other.DefaultSort
	rules := slices.Clone(other.PopularityRules)
	other.RUnlock()
	if defaultSort != "" {
		if _, err := ParseSortKey(string(defaultSort)); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if defaultSort != "" {
		s.DefaultSort = defaultSort
	}
	s.PopularityRules = rules
	return nil
}

func (s *Settings) Lock() {
	s.mu.Lock()
}
func (s *Settings) Unlock() {
	s.mu.Unlock()
}
func (s *Settings) RLock() {
	s.mu.RLock()
}
func (s *Settings) RUnlock() {
	s.mu.RUnlock()
}
