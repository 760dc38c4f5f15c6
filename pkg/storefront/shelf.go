package storefront

import (
	"fmt"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/sorting"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/rs/zerolog/log"
)

// Shelf is the read-only candidate set of one category together with the
// evaluator and sorter working on it. Shelves are shared by every page of
// the category.
type Shelf struct {
	Category  types.Category
	Evaluator *facet.Evaluator
	Sorter    *sorting.SortEngine
}

func NewShelf(c *catalog.Catalog, category types.Category, sorter *sorting.SortEngine, cache facet.ResultCache) *Shelf {
	handler := facet.NewFacetItemHandler(c.ByCategory(category))
	return &Shelf{
		Category:  category,
		Evaluator: facet.NewEvaluator(handler, cache),
		Sorter:    sorter,
	}
}

func (s *Shelf) Bounds() types.PriceRange {
	return s.Evaluator.Handler.Bounds()
}

// NewState returns an unconstrained state for the shelf.
func (s *Shelf) NewState() types.FilterState {
	return types.NewFilterState(s.Category, s.Bounds())
}

// Render evaluates and sorts state into a view.
func (s *Shelf) Render(state types.FilterState, layout types.Layout) *View {
	result := s.Evaluator.Evaluate(state)
	items, err := s.Sorter.Sort(s.Evaluator.Items(result), state.Sort)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default sort")
		state.Sort = types.DefaultSort
		items, _ = s.Sorter.Sort(s.Evaluator.Items(result), state.Sort)
	}
	return &View{
		Category: s.Category,
		Items:    items,
		Total:    result.Total,
		Facets:   result.Facets,
		Price:    result.Price,
		Chips:    Chips(state),
		Sort:     NewSortControl(state.Sort),
		Layout:   layout,
		State:    state,
	}
}

type CacheFactory func(category types.Category) facet.ResultCache

// Storefront holds one shelf per category plus the unscoped catalog shelf.
type Storefront struct {
	Catalog  *catalog.Catalog
	Settings *types.Settings
	Sorter   *sorting.SortEngine
	shelves  map[types.Category]*Shelf
}

func New(c *catalog.Catalog, settings *types.Settings, caches CacheFactory) *Storefront {
	if settings == nil {
		settings = types.DefaultSettings()
	}
	sorter := sorting.NewSortEngine(settings)
	sf := &Storefront{
		Catalog:  c,
		Settings: settings,
		Sorter:   sorter,
		shelves:  make(map[types.Category]*Shelf, len(types.Categories)+1),
	}
	for _, category := range append([]types.Category{""}, types.Categories...) {
		var cache facet.ResultCache
		if caches != nil {
			cache = caches(category)
		}
		sf.shelves[category] = NewShelf(c, category, sorter, cache)
	}
	log.Info().Int("products", c.Len()).Int("shelves", len(sf.shelves)).Msg("storefront ready")
	return sf
}

// Reload applies changed settings. Mounted pages pick up new popularity
// rules on their next render.
func (sf *Storefront) Reload() {
	sf.Sorter.Reload(sf.Settings)
}

// Shelf returns the shelf for category; the empty category is the full catalog.
func (sf *Storefront) Shelf(category types.Category) (*Shelf, error) {
	s, ok := sf.shelves[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownCategory, category)
	}
	return s, nil
}

func (sf *Storefront) NewPage(category types.Category, opts ...Option) (*Page, error) {
	shelf, err := sf.Shelf(category)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithSort(sf.Settings.GetDefaultSort())}, opts...)
	return NewPage(shelf, opts...), nil
}
