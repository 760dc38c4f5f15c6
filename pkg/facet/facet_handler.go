package facet

import (
	"sync"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/rs/zerolog/log"
)

// FacetItemHandler indexes a candidate set per dimension and answers
// narrowing and option count queries against it.
type FacetItemHandler struct {
	mu     sync.RWMutex
	Facets map[types.Dimension]*KeyField
	Price  *PriceField
	All    types.ItemList
	items  map[types.ItemId]*types.Product
	order  []types.ItemId
}

func NewFacetItemHandler(products []types.Product) *FacetItemHandler {
	h := &FacetItemHandler{
		Facets: make(map[types.Dimension]*KeyField, len(types.KeyDimensions)),
		Price:  EmptyPriceField(),
		All:    types.ItemList{},
		items:  make(map[types.ItemId]*types.Product, len(products)),
		order:  make([]types.ItemId, 0, len(products)),
	}
	for _, dim := range types.KeyDimensions {
		h.Facets[dim] = EmptyKeyValueField(dim)
	}
	for i := range products {
		h.HandleItem(&products[i])
	}
	return h
}

// HandleItem adds a product to the index. Ids already present are ignored.
func (h *FacetItemHandler) HandleItem(item *types.Product) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.items[item.Id]; ok {
		log.Warn().Uint32("id", uint32(item.Id)).Msg("duplicate product id ignored")
		return
	}
	h.items[item.Id] = item
	h.order = append(h.order, item.Id)
	h.All.AddId(item.Id)
	for dim, f := range h.Facets {
		f.AddValueLink(item.Value(dim), item.Id)
	}
	h.Price.AddValueLink(item.EffectivePrice(), item.Id)
}

func (h *FacetItemHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}

func (h *FacetItemHandler) Bounds() types.PriceRange {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.Price.Bounds()
}

// HasValue reports whether any candidate carries value on dim.
func (h *FacetItemHandler) HasValue(dim types.Dimension, value string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f, ok := h.Facets[dim]
	return ok && f.HasValue(value)
}

// GetItems resolves ids to product copies, skipping unknown ids.
func (h *FacetItemHandler) GetItems(ids []types.ItemId) []types.Product {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ret := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		if item, ok := h.items[id]; ok {
			ret = append(ret, *item)
		}
	}
	return ret
}

// Evaluate narrows the candidate set and computes option metadata for every
// dimension with the dimension's own constraint relaxed.
func (h *FacetItemHandler) Evaluate(state types.FilterState) *Result {
	h.mu.RLock()
	defer h.mu.RUnlock()

	matching := h.match(state)
	result := &Result{
		Ids:    h.ordered(matching),
		Total:  len(*matching),
		Facets: make([]KeyFacet, 0, len(types.KeyDimensions)),
	}

	for _, dim := range types.KeyDimensions {
		f := h.Facets[dim]
		if !f.CanNarrow(len(h.All)) && !state.HasSelection(dim) {
			continue
		}
		relaxed := matching
		if state.HasSelection(dim) {
			relaxed = h.match(state.WithOut(dim))
		}
		result.Facets = append(result.Facets, f.Result(relaxed, state.Selected[dim]))
	}

	relaxed := matching
	if state.IsPriceNarrowed() {
		relaxed = h.match(state.WithOut(types.PriceFacet))
	}
	result.Price = PriceFacet{
		Bounds:   h.Price.Bounds(),
		Selected: state.PriceRange,
	}
	if extents, ok := h.Price.Extents(relaxed); ok {
		result.Price.Extents = &extents
	}
	return result
}

// ordered lists matching ids in catalog order.
func (h *FacetItemHandler) ordered(ids *types.ItemList) []types.ItemId {
	ret := make([]types.ItemId, 0, len(*ids))
	for _, id := range h.order {
		if ids.Contains(id) {
			ret = append(ret, id)
		}
	}
	return ret
}
