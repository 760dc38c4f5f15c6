package facet

import (
	"slices"
	"strings"

	"github.com/matst80/slask-storefront/pkg/types"
)

// KeyField links every distinct value of a nominal dimension to the ids
// carrying it.
type KeyField struct {
	Dimension types.Dimension
	Keys      map[string]types.ItemList
}

func EmptyKeyValueField(dim types.Dimension) *KeyField {
	return &KeyField{
		Dimension: dim,
		Keys:      map[string]types.ItemList{},
	}
}

// CanNarrow reports whether selecting any value would drop some of the total
// candidates. A single value only narrows when some candidates lack it.
func (f *KeyField) CanNarrow(total int) bool {
	switch len(f.Keys) {
	case 0:
		return false
	case 1:
		for _, ids := range f.Keys {
			return len(ids) < total
		}
	}
	return true
}

func (f *KeyField) HasValue(value string) bool {
	_, ok := f.Keys[value]
	return ok
}

// GetValues returns the distinct values in facet order.
func (f *KeyField) GetValues() []string {
	ret := make([]string, 0, len(f.Keys))
	for value := range f.Keys {
		ret = append(ret, value)
	}
	slices.SortFunc(ret, CompareValues)
	return ret
}

// Match returns the union of ids for the given values.
func (f *KeyField) Match(values []string) *types.ItemList {
	ret := make(types.ItemList)
	for _, v := range values {
		if ids, ok := f.Keys[v]; ok {
			ret.Merge(&ids)
		}
	}
	return &ret
}

func (f *KeyField) AddValueLink(value string, id types.ItemId) bool {
	part := strings.TrimSpace(value)
	if part == "" {
		return false
	}
	if k, ok := f.Keys[part]; ok {
		k.AddId(id)
	} else {
		f.Keys[part] = types.ItemList{id: struct{}{}}
	}
	return true
}

// Result counts each value against the relaxed id set. Every value is kept,
// values without matches are flagged as disabled.
func (f *KeyField) Result(relaxed *types.ItemList, selected types.Selection) KeyFacet {
	values := f.GetValues()
	result := KeyFacet{
		Dimension: f.Dimension,
		Label:     f.Dimension.Label(),
		Values:    make([]FacetValue, 0, len(values)),
	}
	for _, value := range values {
		count := relaxed.IntersectionCount(f.Keys[value])
		result.Values = append(result.Values, FacetValue{
			Value:    value,
			Count:    count,
			Selected: selected.Has(value),
			Disabled: count == 0,
		})
	}
	return result
}
