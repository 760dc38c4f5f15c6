package types

import "fmt"

// Dimension is a filterable product attribute.
type Dimension string

const (
	BrandFacet     Dimension = "brand"
	CategoryFacet  Dimension = "category"
	ProcessorFacet Dimension = "processor"
	RamFacet       Dimension = "ram"
	StorageFacet   Dimension = "storage"
	PriceFacet     Dimension = "price"
)

// KeyDimensions are the nominal dimensions, in the order facets are presented.
var KeyDimensions = []Dimension{CategoryFacet, BrandFacet, ProcessorFacet, RamFacet, StorageFacet}

var dimensionLabels = map[Dimension]string{
	BrandFacet:     "Brand",
	CategoryFacet:  "Category",
	ProcessorFacet: "Processor",
	RamFacet:       "RAM",
	StorageFacet:   "Storage",
	PriceFacet:     "Price",
}

func (d Dimension) Label() string {
	return dimensionLabels[d]
}

func (d Dimension) IsKey() bool {
	_, ok := dimensionLabels[d]
	return ok && d != PriceFacet
}

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortNewest     SortKey = "newest"
	SortRating     SortKey = "rating"
	SortName       SortKey = "name"
)

var SortKeys = []SortKey{SortPopularity, SortPriceLow, SortPriceHigh, SortNewest, SortRating, SortName}

const DefaultSort = SortPopularity

func ParseSortKey(value string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == value {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, value)
}

type Layout string

const (
	GridLayout Layout = "grid"
	ListLayout Layout = "list"
)

func ParseLayout(value string) Layout {
	if value == string(ListLayout) {
		return ListLayout
	}
	return GridLayout
}
