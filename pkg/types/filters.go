package types

import (
	"maps"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
)

// Selection is the set of selected values for one dimension.
type Selection map[string]struct{}

func (s Selection) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the selected values in lexical order.
func (s Selection) Values() []string {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON writes the selection as a sorted list.
func (s Selection) MarshalJSON() ([]byte, error) {
	values := s.Values()
	if values == nil {
		values = []string{}
	}
	return sonic.Marshal(values)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var values []string
	if err := sonic.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = make(Selection, len(values))
	for _, v := range values {
		(*s)[v] = struct{}{}
	}
	return nil
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r PriceRange) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Clamp limits the range to bounds and collapses an inverted range onto its
// max. ErrRangeInversion is returned together with the usable range when the
// input had min above max.
func (r PriceRange) Clamp(bounds PriceRange) (PriceRange, error) {
	var err error
	if r.Min > r.Max {
		err = ErrRangeInversion
	}
	r.Min = min(max(r.Min, bounds.Min), bounds.Max)
	r.Max = min(max(r.Max, bounds.Min), bounds.Max)
	if r.Min > r.Max {
		r.Min = r.Max
	}
	return r, err
}

// FilterState is the set of active selections for one browsing session.
type FilterState struct {
	Selected        map[Dimension]Selection `json:"selected"`
	PriceRange      PriceRange              `json:"priceRange"`
	Bounds          PriceRange              `json:"bounds"`
	InitialCategory Category                `json:"initialCategory,omitempty"`
	Sort            SortKey                 `json:"sort"`
}

func NewFilterState(initial Category, bounds PriceRange) FilterState {
	return FilterState{
		Selected:        map[Dimension]Selection{},
		PriceRange:      bounds,
		Bounds:          bounds,
		InitialCategory: initial,
		Sort:            DefaultSort,
	}
}

// Clone returns a deep copy; snapshots handed to consumers never share
// selection maps with the store.
func (s FilterState) Clone() FilterState {
	selected := make(map[Dimension]Selection, len(s.Selected))
	for dim, sel := range s.Selected {
		if len(sel) > 0 {
			selected[dim] = maps.Clone(sel)
		}
	}
	s.Selected = selected
	return s
}

// WithOut returns a copy where dim is unconstrained.
func (s FilterState) WithOut(dim Dimension) FilterState {
	result := s.Clone()
	if dim == PriceFacet {
		result.PriceRange = s.Bounds
	} else {
		delete(result.Selected, dim)
	}
	return result
}

func (s FilterState) HasSelection(dim Dimension) bool {
	return len(s.Selected[dim]) > 0
}

func (s FilterState) IsSelected(dim Dimension, value string) bool {
	return s.Selected[dim].Has(value)
}

func (s FilterState) IsPriceNarrowed() bool {
	return s.PriceRange != s.Bounds
}

func (s FilterState) HasFilters() bool {
	for _, sel := range s.Selected {
		if len(sel) > 0 {
			return true
		}
	}
	return s.IsPriceNarrowed()
}

// FilterHash digests everything that influences narrowing. The sort key is
// left out since it does not change which products match.
func (s FilterState) FilterHash() uint64 {
	h := xxhash.New()
	h.WriteString(string(s.InitialCategory))
	for _, dim := range KeyDimensions {
		sel := s.Selected[dim]
		if len(sel) == 0 {
			continue
		}
		h.WriteString("|" + string(dim) + "=")
		for _, v := range sel.Values() {
			h.WriteString(strconv.Itoa(len(v)) + ":" + v)
		}
	}
	h.WriteString("|p=" + strconv.Itoa(s.PriceRange.Min) + "-" + strconv.Itoa(s.PriceRange.Max))
	return h.Sum64()
}
