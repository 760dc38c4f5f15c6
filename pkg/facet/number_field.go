package facet

import (
	"maps"
	"slices"

	"github.com/matst80/slask-storefront/pkg/types"
)

// PriceField indexes effective prices. Distinct prices are kept sorted so a
// range lookup only touches the prices inside it.
type PriceField struct {
	values map[int]types.ItemList
	sorted []int
	prices map[types.ItemId]int
	all    types.ItemList
}

func EmptyPriceField() *PriceField {
	return &PriceField{
		values: map[int]types.ItemList{},
		prices: map[types.ItemId]int{},
		all:    types.ItemList{},
	}
}

func (f *PriceField) AddValueLink(value int, id types.ItemId) {
	if old, ok := f.prices[id]; ok {
		f.RemoveValueLink(old, id)
	}
	ids, ok := f.values[value]
	if !ok {
		ids = types.ItemList{}
		f.values[value] = ids
		idx, _ := slices.BinarySearch(f.sorted, value)
		f.sorted = slices.Insert(f.sorted, idx, value)
	}
	ids.AddId(id)
	f.prices[id] = value
	f.all.AddId(id)
}

func (f *PriceField) RemoveValueLink(value int, id types.ItemId) {
	ids, ok := f.values[value]
	if !ok {
		return
	}
	delete(ids, id)
	delete(f.prices, id)
	delete(f.all, id)
	if len(ids) == 0 {
		delete(f.values, value)
		if idx, found := slices.BinarySearch(f.sorted, value); found {
			f.sorted = slices.Delete(f.sorted, idx, idx+1)
		}
	}
}

// Bounds is the observed price range, zero when nothing is indexed.
func (f *PriceField) Bounds() types.PriceRange {
	if len(f.sorted) == 0 {
		return types.PriceRange{}
	}
	return types.PriceRange{Min: f.sorted[0], Max: f.sorted[len(f.sorted)-1]}
}

func (f *PriceField) MatchesRange(minValue, maxValue int) *types.ItemList {
	if minValue > maxValue {
		return &types.ItemList{}
	}
	b := f.Bounds()
	if minValue <= b.Min && maxValue >= b.Max {
		all := f.all.Clone()
		return &all
	}
	found := types.ItemList{}
	start, _ := slices.BinarySearch(f.sorted, minValue)
	for _, v := range f.sorted[start:] {
		if v > maxValue {
			break
		}
		maps.Copy(found, f.values[v])
	}
	return &found
}

// Extents returns the price range spanned by ids, false for an empty set.
func (f *PriceField) Extents(ids *types.ItemList) (types.PriceRange, bool) {
	found := false
	r := types.PriceRange{}
	for id := range *ids {
		v, ok := f.prices[id]
		if !ok {
			continue
		}
		if !found {
			r = types.PriceRange{Min: v, Max: v}
			found = true
			continue
		}
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	return r, found
}
