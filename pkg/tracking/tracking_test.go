package tracking

import (
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEvent(t *testing.T) {
	state := types.NewFilterState(types.Laptops, types.PriceRange{Min: 100, Max: 900})
	state.Selected[types.BrandFacet] = types.Selection{"HP": {}, "Dell": {}}
	state.Selected[types.RamFacet] = types.Selection{}
	state.Sort = types.SortPriceLow

	evt := NewFilterEvent("abc", types.Laptops, state, 4)
	assert.Equal(t, map[string][]string{"brand": {"Dell", "HP"}}, evt.Selected)
	assert.Nil(t, evt.Price)

	state.PriceRange = types.PriceRange{Min: 200, Max: 900}
	evt = NewFilterEvent("abc", types.Laptops, state, 4)
	require.NotNil(t, evt.Price)

	data, err := sonic.Marshal(evt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"session_id":"abc","context":"storefront","event":1,
		"category":"laptops","selected":{"brand":["Dell","HP"]},
		"price":{"min":200,"max":900},"sort":"price-low","noi":4
	}`, string(data))
}

func TestSessionEventIp(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "10.0.0.1")
	r.Header.Set("Accept-Language", "sv")
	s := NewSession("abc", r)
	assert.Equal(t, "10.0.0.1", s.Ip)
	assert.Equal(t, "sv", s.Language)

	r.Header.Set("X-Real-Ip", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", NewSession("abc", r).Ip)
}

func TestNoopTracking(t *testing.T) {
	var tr Tracking = NoopTracking{}
	tr.TrackFilter("x", types.Phones, types.FilterState{}, 0)
	assert.NoError(t, tr.Close())
}
