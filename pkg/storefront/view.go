package storefront

import (
	"fmt"

	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/sorting"
	"github.com/matst80/slask-storefront/pkg/types"
)

// Chip is one removable active filter.
type Chip struct {
	Dimension types.Dimension `json:"dimension"`
	Value     string          `json:"value,omitempty"`
	Label     string          `json:"label"`
}

type SortControl struct {
	Key     types.SortKey        `json:"key"`
	Label   string               `json:"label"`
	Options []sorting.SortOption `json:"options"`
}

// View is everything the grid, sidebar, drawer, chip list and sort control
// render. None of them filter or sort on their own.
type View struct {
	Category types.Category    `json:"category,omitempty"`
	Items    []types.Product   `json:"items"`
	Total    int               `json:"total"`
	Facets   []facet.KeyFacet  `json:"facets"`
	Price    facet.PriceFacet  `json:"price"`
	Chips    []Chip            `json:"chips"`
	Sort     SortControl       `json:"sort"`
	Layout   types.Layout      `json:"layout"`
	State    types.FilterState `json:"state"`
	Version  uint64            `json:"version"`
}

func FormatPrice(value int) string {
	return fmt.Sprintf("%d.%02d", value/100, value%100)
}

func valueLabel(dim types.Dimension, value string) string {
	if dim == types.CategoryFacet {
		return types.Category(value).Label()
	}
	return value
}

// Chips lists active filters in facet order, price last.
func Chips(state types.FilterState) []Chip {
	ret := make([]Chip, 0)
	for _, dim := range types.KeyDimensions {
		sel := state.Selected[dim]
		for _, value := range sel.Values() {
			ret = append(ret, Chip{
				Dimension: dim,
				Value:     value,
				Label:     fmt.Sprintf("%s: %s", dim.Label(), valueLabel(dim, value)),
			})
		}
	}
	if state.IsPriceNarrowed() {
		ret = append(ret, Chip{
			Dimension: types.PriceFacet,
			Label:     fmt.Sprintf("%s: %s - %s", types.PriceFacet.Label(), FormatPrice(state.PriceRange.Min), FormatPrice(state.PriceRange.Max)),
		})
	}
	return ret
}

func NewSortControl(key types.SortKey) SortControl {
	return SortControl{
		Key:     key,
		Label:   sorting.Label(key),
		Options: sorting.Options(),
	}
}
