package facet

import "github.com/matst80/slask-storefront/pkg/types"

func (h *FacetItemHandler) Match(state types.FilterState) *types.ItemList {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.match(state)
}

// match keeps a product when every constrained dimension contains its value,
// its effective price is inside the range and it belongs to the initial
// category when one is set. Products without a value never match a
// constrained dimension.
func (h *FacetItemHandler) match(state types.FilterState) *types.ItemList {
	result := h.All.Clone()

	if state.InitialCategory != "" {
		result.Intersect(*h.Facets[types.CategoryFacet].Match([]string{string(state.InitialCategory)}))
	}

	for _, dim := range types.KeyDimensions {
		sel := state.Selected[dim]
		if len(sel) == 0 {
			continue
		}
		result.Intersect(*h.Facets[dim].Match(sel.Values()))
		if len(result) == 0 {
			return &result
		}
	}

	result.Intersect(*h.Price.MatchesRange(state.PriceRange.Min, state.PriceRange.Max))
	return &result
}
