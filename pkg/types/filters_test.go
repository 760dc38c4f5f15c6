package types

import (
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bounds = PriceRange{Min: 50000, Max: 120000}

func TestPriceRangeClamp(t *testing.T) {
	r, err := PriceRange{Min: 0, Max: 100000}.Clamp(bounds)
	assert.NoError(t, err)
	assert.Equal(t, PriceRange{Min: 50000, Max: 100000}, r)

	r, err = PriceRange{Min: 60000, Max: 500000}.Clamp(bounds)
	assert.NoError(t, err)
	assert.Equal(t, PriceRange{Min: 60000, Max: 120000}, r)
}

func TestPriceRangeClampInverted(t *testing.T) {
	r, err := PriceRange{Min: 90000, Max: 70000}.Clamp(bounds)
	assert.True(t, errors.Is(err, ErrRangeInversion))
	assert.Equal(t, PriceRange{Min: 70000, Max: 70000}, r)
	assert.LessOrEqual(t, r.Min, r.Max)
}

func TestPriceRangeClampOutsideBounds(t *testing.T) {
	r, _ := PriceRange{Min: 200000, Max: 300000}.Clamp(bounds)
	assert.Equal(t, PriceRange{Min: 120000, Max: 120000}, r)

	r, _ = PriceRange{Min: -10, Max: 10}.Clamp(bounds)
	assert.Equal(t, PriceRange{Min: 50000, Max: 50000}, r)
}

func TestFilterStateWithOut(t *testing.T) {
	s := NewFilterState(Laptops, bounds)
	s.Selected[BrandFacet] = Selection{"Dell": {}}
	s.Selected[RamFacet] = Selection{"16GB": {}}
	s.PriceRange = PriceRange{Min: 50000, Max: 90000}

	noBrand := s.WithOut(BrandFacet)
	assert.False(t, noBrand.HasSelection(BrandFacet))
	assert.True(t, noBrand.HasSelection(RamFacet))
	assert.True(t, s.HasSelection(BrandFacet), "original must be untouched")

	noPrice := s.WithOut(PriceFacet)
	assert.Equal(t, bounds, noPrice.PriceRange)
	assert.False(t, noPrice.IsPriceNarrowed())
	assert.True(t, s.IsPriceNarrowed())
}

func TestFilterStateCloneIsDeep(t *testing.T) {
	s := NewFilterState("", bounds)
	s.Selected[BrandFacet] = Selection{"Dell": {}}
	c := s.Clone()
	c.Selected[BrandFacet]["HP"] = struct{}{}
	assert.False(t, s.IsSelected(BrandFacet, "HP"))
}

func TestFilterHash(t *testing.T) {
	a := NewFilterState(Laptops, bounds)
	a.Selected[BrandFacet] = Selection{"Dell": {}, "HP": {}}
	b := NewFilterState(Laptops, bounds)
	b.Selected[BrandFacet] = Selection{"HP": {}, "Dell": {}}
	b.Selected[RamFacet] = Selection{}
	b.Sort = SortName

	assert.Equal(t, a.FilterHash(), b.FilterHash(), "order, empty selections and sort must not matter")

	b.PriceRange.Max = 100000
	assert.NotEqual(t, a.FilterHash(), b.FilterHash())

	c := NewFilterState(Phones, bounds)
	assert.NotEqual(t, NewFilterState(Laptops, bounds).FilterHash(), c.FilterHash())
}

func TestParseHelpers(t *testing.T) {
	assert.True(t, RamFacet.IsKey())
	assert.False(t, Dimension("color").IsKey())
	assert.False(t, PriceFacet.IsKey())

	_, err := ParseSortKey("cheapest")
	assert.ErrorIs(t, err, ErrInvalidSortKey)

	_, err = ParseCategory("fridges")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "TVs", Tvs.Label())
}

func TestProductValidate(t *testing.T) {
	p := Product{Id: 1, Category: Laptops, Price: 100, SalePrice: intPtr(150), Rating: 3}
	assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)
	p.SalePrice = intPtr(80)
	assert.NoError(t, p.Validate())
	assert.Equal(t, 80, p.EffectivePrice())
	p.Rating = 6
	assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)
}

func TestFilterStateJson(t *testing.T) {
	state := NewFilterState(Laptops, PriceRange{Min: 100, Max: 900})
	state.Selected[BrandFacet] = Selection{"HP": {}, "Dell": {}}
	data, err := sonic.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"brand":["Dell","HP"]`)

	var decoded FilterState
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, state.FilterHash(), decoded.FilterHash())
	assert.True(t, decoded.IsSelected(BrandFacet, "HP"))
}
