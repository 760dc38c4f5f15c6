package sorting

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matst80/slask-storefront/pkg/types"
	"golang.org/x/text/cases"
)

type SortOption struct {
	Key   types.SortKey `json:"key"`
	Label string        `json:"label"`
}

// SortEngine orders product lists. It holds no state besides the popularity
// rules, so a single engine can be shared by every page.
type SortEngine struct {
	mu    sync.RWMutex
	rules []types.ItemPopularityRule
}

func NewSortEngine(settings *types.Settings) *SortEngine {
	if settings == nil {
		settings = types.DefaultSettings()
	}
	return &SortEngine{
		rules: settings.Rules(),
	}
}

// Reload picks up changed popularity rules.
func (e *SortEngine) Reload(settings *types.Settings) {
	rules := settings.Rules()
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
}

func (e *SortEngine) getRules() []types.ItemPopularityRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules
}

// Sort returns a new slice ordered by key. The input is left untouched and
// equal keys keep their relative order.
func (e *SortEngine) Sort(items []types.Product, key types.SortKey) ([]types.Product, error) {
	sorter, ok := getSorter(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidSortKey, key)
	}

	entries := make([]entry, len(items))
	rules := e.getRules()
	folder := cases.Fold()
	for i := range items {
		entries[i].item = &items[i]
		switch key {
		case types.SortPopularity:
			entries[i].score = types.CollectPopularity(&items[i], rules...)
		case types.SortName:
			entries[i].name = folder.String(items[i].Name)
		}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return sorter.compare(&a, &b)
	})

	ret := make([]types.Product, len(entries))
	for i := range entries {
		ret[i] = *entries[i].item
	}
	return ret, nil
}

func Label(key types.SortKey) string {
	if s, ok := getSorter(key); ok {
		return s.Label
	}
	return string(key)
}

func Options() []SortOption {
	ret := make([]SortOption, len(sorters))
	for i, s := range sorters {
		ret[i] = SortOption{Key: s.Key, Label: s.Label}
	}
	return ret
}
