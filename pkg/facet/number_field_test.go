package facet

import (
	"testing"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
)

func makePriceField() *PriceField {
	f := EmptyPriceField()
	f.AddValueLink(100, 1)
	f.AddValueLink(200, 2)
	f.AddValueLink(200, 3)
	f.AddValueLink(300, 4)
	return f
}

func TestPriceFieldBounds(t *testing.T) {
	f := makePriceField()
	assert.Equal(t, types.PriceRange{Min: 100, Max: 300}, f.Bounds())
	assert.Equal(t, types.PriceRange{}, EmptyPriceField().Bounds())
}

func TestPriceFieldMatchesRange(t *testing.T) {
	f := makePriceField()
	assert.Equal(t, &types.ItemList{2: {}, 3: {}}, f.MatchesRange(150, 250))
	assert.Equal(t, &types.ItemList{1: {}, 2: {}, 3: {}}, f.MatchesRange(100, 200))
	assert.Len(t, *f.MatchesRange(0, 1000), 4)
	assert.Empty(t, *f.MatchesRange(250, 150))
}

func TestPriceFieldMatchAllIsCopy(t *testing.T) {
	f := makePriceField()
	all := f.MatchesRange(0, 1000)
	delete(*all, 1)
	assert.Len(t, *f.MatchesRange(0, 1000), 4)
}

func TestPriceFieldRemove(t *testing.T) {
	f := makePriceField()
	f.RemoveValueLink(300, 4)
	assert.Equal(t, types.PriceRange{Min: 100, Max: 200}, f.Bounds())
	f.AddValueLink(50, 2)
	assert.Equal(t, types.PriceRange{Min: 50, Max: 200}, f.Bounds())
	assert.Len(t, *f.MatchesRange(0, 1000), 3)
}

func TestPriceFieldExtents(t *testing.T) {
	f := makePriceField()
	r, ok := f.Extents(&types.ItemList{2: {}, 4: {}})
	assert.True(t, ok)
	assert.Equal(t, types.PriceRange{Min: 200, Max: 300}, r)
	_, ok = f.Extents(&types.ItemList{})
	assert.False(t, ok)
}

func TestCompareValues(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"8GB", "16GB", -1},
		{"1TB", "512GB", 1},
		{"256 GB", "256GB", -1},
		{"i5", "i10", -1},
		{"Ryzen 7", "Ryzen 5", 1},
		{"apple", "Banana", -1},
		{"HP", "HP", 0},
		{"Ä10", "ä9", 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CompareValues(c.a, c.b), "%s vs %s", c.a, c.b)
	}
}
