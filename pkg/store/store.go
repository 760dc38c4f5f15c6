package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	noIntents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_intents_total",
		Help: "The total number of applied filter intents",
	}, []string{"kind"})
	noRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_intents_rejected_total",
		Help: "The total number of ignored filter intents",
	}, []string{"kind"})
)

// Candidates is what the store needs to know about the candidate set to keep
// selections valid.
type Candidates interface {
	Bounds() types.PriceRange
	HasValue(dim types.Dimension, value string) bool
}

type Listener func(state types.FilterState)

type subscription struct {
	id uint64
	fn Listener
}

// FilterStore owns the filter state of one browsing session. State only
// changes through its intents; every change is pushed to all subscribers
// before the intent returns.
type FilterStore struct {
	mu          sync.Mutex
	candidates  Candidates
	state       types.FilterState
	version     uint64
	nextId      uint64
	subscribers []subscription
}

func NewFilterStore(candidates Candidates, initialCategory types.Category) *FilterStore {
	return &FilterStore{
		candidates: candidates,
		state:      types.NewFilterState(initialCategory, candidates.Bounds()),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *FilterStore) Snapshot() types.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Current returns a snapshot together with the version it belongs to.
func (s *FilterStore) Current() (types.FilterState, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.version
}

// Version increases with every applied change.
func (s *FilterStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *FilterStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	id := s.nextId
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// update applies fn under the lock and notifies subscribers when fn reports
// a change.
func (s *FilterStore) update(kind types.IntentKind, fn func(state *types.FilterState) (bool, error)) error {
	s.mu.Lock()
	changed, err := fn(&s.state)
	if err != nil {
		s.mu.Unlock()
		noRejected.WithLabelValues(string(kind)).Inc()
		log.Debug().Err(err).Str("intent", string(kind)).Msg("intent ignored")
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.version++
	snapshot := s.state.Clone()
	listeners := make([]Listener, len(s.subscribers))
	for i, sub := range s.subscribers {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	noIntents.WithLabelValues(string(kind)).Inc()
	for _, l := range listeners {
		l(snapshot)
	}
	return nil
}

func (s *FilterStore) validate(dim types.Dimension, value string) error {
	if !dim.IsKey() {
		return fmt.Errorf("%w: %q", types.ErrInvalidDimension, dim)
	}
	if !s.candidates.HasValue(dim, value) {
		return fmt.Errorf("%w: %s=%q", types.ErrInvalidValue, dim, value)
	}
	return nil
}

// ToggleFacetValue selects value on dim, or deselects it when already selected.
func (s *FilterStore) ToggleFacetValue(dim types.Dimension, value string) error {
	return s.update(types.ToggleIntent, func(state *types.FilterState) (bool, error) {
		if state.IsSelected(dim, value) {
			delete(state.Selected[dim], value)
			return true, nil
		}
		if err := s.validate(dim, value); err != nil {
			return false, err
		}
		sel, ok := state.Selected[dim]
		if !ok {
			sel = types.Selection{}
			state.Selected[dim] = sel
		}
		sel[value] = struct{}{}
		return true, nil
	})
}

// RemoveFilter deselects value on dim. Removing the price filter resets the
// range to the full bounds. Removing something not selected is a no-op.
func (s *FilterStore) RemoveFilter(dim types.Dimension, value string) error {
	return s.update(types.RemoveIntent, func(state *types.FilterState) (bool, error) {
		if dim == types.PriceFacet {
			if !state.IsPriceNarrowed() {
				return false, nil
			}
			state.PriceRange = state.Bounds
			return true, nil
		}
		if !dim.IsKey() {
			return false, fmt.Errorf("%w: %q", types.ErrInvalidDimension, dim)
		}
		if !state.IsSelected(dim, value) {
			return false, nil
		}
		delete(state.Selected[dim], value)
		return true, nil
	})
}

// SetPriceRange clamps the range to the candidate bounds. An inverted range
// is collapsed onto its max instead of being rejected.
func (s *FilterStore) SetPriceRange(minValue, maxValue int) error {
	return s.update(types.PriceIntent, func(state *types.FilterState) (bool, error) {
		r, err := types.PriceRange{Min: minValue, Max: maxValue}.Clamp(state.Bounds)
		if errors.Is(err, types.ErrRangeInversion) {
			log.Debug().Int("min", minValue).Int("max", maxValue).Msg("inverted price range clamped")
		}
		if r == state.PriceRange {
			return false, nil
		}
		state.PriceRange = r
		return true, nil
	})
}

// ClearAll drops every selection and the price range, keeping the sort key.
func (s *FilterStore) ClearAll() {
	s.update(types.ClearIntent, func(state *types.FilterState) (bool, error) {
		if !state.HasFilters() {
			return false, nil
		}
		state.Selected = map[types.Dimension]types.Selection{}
		state.PriceRange = state.Bounds
		return true, nil
	})
}

func (s *FilterStore) SetSort(key types.SortKey) error {
	return s.update(types.SortIntent, func(state *types.FilterState) (bool, error) {
		parsed, err := types.ParseSortKey(string(key))
		if err != nil {
			return false, err
		}
		if parsed == state.Sort {
			return false, nil
		}
		state.Sort = parsed
		return true, nil
	})
}

// Dispatch applies a named intent.
func (s *FilterStore) Dispatch(intent types.Intent) error {
	switch intent.Kind {
	case types.ToggleIntent:
		return s.ToggleFacetValue(intent.Dimension, intent.Value)
	case types.RemoveIntent:
		return s.RemoveFilter(intent.Dimension, intent.Value)
	case types.ClearIntent:
		s.ClearAll()
		return nil
	case types.PriceIntent:
		return s.SetPriceRange(intent.Min, intent.Max)
	case types.SortIntent:
		return s.SetSort(intent.Sort)
	}
	noRejected.WithLabelValues("unknown").Inc()
	return fmt.Errorf("%w: %q", types.ErrInvalidIntent, intent.Kind)
}
