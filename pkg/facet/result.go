package facet

import "github.com/matst80/slask-storefront/pkg/types"

type FacetValue struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type KeyFacet struct {
	Dimension types.Dimension `json:"id"`
	Label     string          `json:"name"`
	Values    []FacetValue    `json:"values"`
}

type PriceFacet struct {
	Bounds   types.PriceRange  `json:"bounds"`
	Selected types.PriceRange  `json:"selected"`
	Extents  *types.PriceRange `json:"extents,omitempty"`
}

// Result is the evaluation of one filter state against a candidate set.
// Results can be shared through a cache and must be treated as read-only.
type Result struct {
	Ids    []types.ItemId `json:"ids"`
	Total  int            `json:"total"`
	Facets []KeyFacet     `json:"facets"`
	Price  PriceFacet     `json:"price"`
}
