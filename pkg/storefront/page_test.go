package storefront

import (
	"sync"
	"testing"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]types.Product{
		{Id: 1, Name: "Budget", Category: types.Laptops, Brand: "HP", Ram: "8GB", Price: 50000, InStock: true},
		{Id: 2, Name: "Mid", Category: types.Laptops, Brand: "Dell", Ram: "16GB", Price: 80000, InStock: true},
		{Id: 3, Name: "Pro", Category: types.Laptops, Brand: "Dell", Ram: "16GB", Price: 120000, InStock: true},
		{Id: 4, Name: "Phone", Category: types.Phones, Brand: "Samsung", Price: 70000, InStock: true},
	})
	require.NoError(t, err)
	return c
}

func prices(items []types.Product) []int {
	ret := make([]int, len(items))
	for i, item := range items {
		ret[i] = item.EffectivePrice()
	}
	return ret
}

func newPage(t *testing.T, opts ...Option) *Page {
	sf := New(testCatalog(t), nil, func(types.Category) facet.ResultCache {
		return facet.NewMemoryCache(16)
	})
	p, err := sf.NewPage(types.Laptops, opts...)
	require.NoError(t, err)
	return p
}

func TestPageScenario(t *testing.T) {
	p := newPage(t)
	assert.Equal(t, 3, p.View().Total)

	require.NoError(t, p.Dispatch(types.Toggle(types.RamFacet, "16GB")))
	assert.Equal(t, 2, p.View().Total)

	require.NoError(t, p.Dispatch(types.SetPrice(0, 100000)))
	v := p.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, 80000, v.Items[0].Price)

	require.NoError(t, p.Dispatch(types.Clear()))
	assert.Equal(t, 3, p.View().Total)
	assert.Empty(t, p.View().Chips)
}

func TestPageSortScenario(t *testing.T) {
	p := newPage(t, WithSort(types.SortPriceLow))
	assert.Equal(t, []int{50000, 80000, 120000}, prices(p.View().Items))
	assert.Equal(t, "Price: low to high", p.View().Sort.Label)

	require.NoError(t, p.Dispatch(types.SetSort(types.SortPriceHigh)))
	assert.Equal(t, []int{120000, 80000, 50000}, prices(p.View().Items))
}

func TestPageChipRemoval(t *testing.T) {
	p := newPage(t)
	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "Dell")))
	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "HP")))
	require.NoError(t, p.Dispatch(types.Toggle(types.RamFacet, "8GB")))
	assert.Len(t, p.View().Chips, 3)
	assert.Equal(t, 1, p.View().Total)

	require.NoError(t, p.Dispatch(types.Remove(types.BrandFacet, "Dell")))
	v := p.View()
	assert.Equal(t, []string{"HP"}, v.State.Selected[types.BrandFacet].Values())
	assert.True(t, v.State.IsSelected(types.RamFacet, "8GB"))
	assert.Equal(t, 1, v.Total)
	assert.Equal(t, []Chip{
		{Dimension: types.BrandFacet, Value: "HP", Label: "Brand: HP"},
		{Dimension: types.RamFacet, Value: "8GB", Label: "RAM: 8GB"},
	}, v.Chips)
}

func TestPageListenersSeeConsistentView(t *testing.T) {
	p := newPage(t)
	var seen []*View
	unsubscribe := p.Subscribe(func(v *View) {
		seen = append(seen, v)
		assert.Same(t, v, p.View(), "listeners run after the view was replaced")
	})

	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "Dell")))
	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[0].Total)
	assert.Equal(t, uint64(1), seen[0].Version)
	brand, ok := findFacet(seen[0], types.BrandFacet)
	require.True(t, ok)
	assert.True(t, brand.Values[0].Selected || brand.Values[1].Selected)

	assert.Error(t, p.Dispatch(types.Toggle("color", "red")))
	assert.Len(t, seen, 1)

	unsubscribe()
	p.Dispatch(types.Clear())
	assert.Len(t, seen, 1)
}

func findFacet(v *View, dim types.Dimension) (facet.KeyFacet, bool) {
	for _, f := range v.Facets {
		if f.Dimension == dim {
			return f, true
		}
	}
	return facet.KeyFacet{}, false
}

func TestPageLayout(t *testing.T) {
	p := newPage(t, WithLayout(types.ListLayout))
	assert.Equal(t, types.ListLayout, p.View().Layout)
	version := p.Store.Version()
	p.SetLayout(types.GridLayout)
	assert.Equal(t, types.GridLayout, p.View().Layout)
	assert.Equal(t, version, p.Store.Version())
}

func TestPageClose(t *testing.T) {
	p := newPage(t)
	before := p.View()
	p.Close()
	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "HP")))
	assert.Same(t, before, p.View())
}

func TestUnknownShelf(t *testing.T) {
	sf := New(testCatalog(t), nil, nil)
	_, err := sf.NewPage("fridges")
	assert.ErrorIs(t, err, types.ErrUnknownCategory)

	all, err := sf.Shelf("")
	require.NoError(t, err)
	assert.Equal(t, 4, all.Render(all.NewState(), types.GridLayout).Total)
}

func TestPriceChip(t *testing.T) {
	state := types.NewFilterState(types.Laptops, types.PriceRange{Min: 50000, Max: 120000})
	state.PriceRange = types.PriceRange{Min: 50000, Max: 99950}
	chips := Chips(state)
	require.Len(t, chips, 1)
	assert.Equal(t, "Price: 500.00 - 999.50", chips[0].Label)
}

func TestPageConcurrentIntentsEndOnLatestState(t *testing.T) {
	p := newPage(t)
	values := []string{"HP", "Dell"}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(value string) {
			defer wg.Done()
			p.Dispatch(types.Toggle(types.BrandFacet, value))
		}(values[i%2])
	}
	wg.Wait()

	state, version := p.Store.Current()
	v := p.View()
	assert.Equal(t, version, v.Version)
	assert.Equal(t, state.Selected[types.BrandFacet].Values(), v.State.Selected[types.BrandFacet].Values())
}
