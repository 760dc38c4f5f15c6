package facet

import "github.com/matst80/slask-storefront/pkg/types"

func (k *KeyFacet) value(value string) (FacetValue, bool) {
	for _, v := range k.Values {
		if v.Value == value {
			return v, true
		}
	}
	return FacetValue{}, false
}

func (r *Result) facet(dim types.Dimension) (*KeyFacet, bool) {
	for i := range r.Facets {
		if r.Facets[i].Dimension == dim {
			return &r.Facets[i], true
		}
	}
	return nil, false
}
