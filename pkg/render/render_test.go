package render

import (
	"strings"
	"testing"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopPage(t *testing.T, opts ...storefront.Option) *storefront.Page {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	p, err := storefront.New(c, nil, nil).NewPage(types.Laptops, opts...)
	require.NoError(t, err)
	return p
}

func TestRenderGrid(t *testing.T) {
	p := laptopPage(t)
	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "Apple")))
	out := NewRenderer(120).Render(p.View())

	assert.Contains(t, out, "Laptops")
	assert.Contains(t, out, "2 products")
	assert.Contains(t, out, "MacBook Air M3")
	assert.Contains(t, out, "[x] Apple")
	assert.Contains(t, out, "Brand: Apple")
	assert.Contains(t, out, "Out of stock")
	assert.NotContains(t, out, "Dell XPS 13")
}

func TestRenderList(t *testing.T) {
	p := laptopPage(t, storefront.WithLayout(types.ListLayout), storefront.WithSort(types.SortPriceLow))
	out := NewRenderer(120).Render(p.View())
	first := strings.Index(out, "Acer Aspire 5")
	last := strings.Index(out, "MacBook Pro 14")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, last)
	assert.Less(t, first, last)
	assert.Contains(t, out, "479.00")
	assert.Contains(t, out, "549.00")
}

func TestRenderEmpty(t *testing.T) {
	p := laptopPage(t)
	require.NoError(t, p.Dispatch(types.Toggle(types.BrandFacet, "Apple")))
	require.NoError(t, p.Dispatch(types.Toggle(types.RamFacet, "32GB")))
	out := NewRenderer(80).Render(p.View())
	assert.Contains(t, out, "No products match")
	assert.Contains(t, out, "0 products")
}
