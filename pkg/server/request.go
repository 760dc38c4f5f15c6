package server

import (
	"errors"
	"math"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-storefront/pkg/store"
	"github.com/matst80/slask-storefront/pkg/types"
)

// FilterRequest is a filter state in query string form, for example
// ?brand=Dell&brand=HP&ram=16GB&min=50000&max=99900&sort=price-low
type FilterRequest struct {
	Brand     []string      `json:"brand" schema:"brand"`
	Category  []string      `json:"category" schema:"category"`
	Processor []string      `json:"processor" schema:"processor"`
	Ram       []string      `json:"ram" schema:"ram"`
	Storage   []string      `json:"storage" schema:"storage"`
	Min       *int          `json:"min" schema:"min"`
	Max       *int          `json:"max" schema:"max"`
	Sort      types.SortKey `json:"sort" schema:"sort"`
	Layout    types.Layout  `json:"layout" schema:"layout"`
}

func FilterRequestFromQuery(query url.Values) (*FilterRequest, error) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	result := &FilterRequest{}
	if err := decoder.Decode(result, query); err != nil {
		return nil, err
	}
	return result, nil
}

func (fr *FilterRequest) values(dim types.Dimension) []string {
	switch dim {
	case types.BrandFacet:
		return fr.Brand
	case types.CategoryFacet:
		return fr.Category
	case types.ProcessorFacet:
		return fr.Processor
	case types.RamFacet:
		return fr.Ram
	case types.StorageFacet:
		return fr.Storage
	}
	return nil
}

// Intents lists the intents that turn an unconstrained state into the
// requested one. A missing price bound means unbounded on that side.
func (fr *FilterRequest) Intents() []types.Intent {
	ret := make([]types.Intent, 0)
	for _, dim := range types.KeyDimensions {
		seen := map[string]struct{}{}
		for _, value := range fr.values(dim) {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			ret = append(ret, types.Toggle(dim, value))
		}
	}
	if fr.Min != nil || fr.Max != nil {
		minValue, maxValue := 0, math.MaxInt
		if fr.Min != nil {
			minValue = *fr.Min
		}
		if fr.Max != nil {
			maxValue = *fr.Max
		}
		ret = append(ret, types.SetPrice(minValue, maxValue))
	}
	if fr.Sort != "" {
		ret = append(ret, types.SetSort(fr.Sort))
	}
	return ret
}

// Apply dispatches every intent to s. All intents are tried; the returned
// error joins the rejected ones.
func (fr *FilterRequest) Apply(s *store.FilterStore) error {
	var errs []error
	for _, intent := range fr.Intents() {
		if err := s.Dispatch(intent); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (fr *FilterRequest) GetLayout() types.Layout {
	return types.ParseLayout(string(fr.Layout))
}
