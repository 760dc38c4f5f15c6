package server

import (
	"context"
	"os"
	"testing"

	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheKey(t *testing.T) {
	c := NewRedisCache(nil, "abc", "", 4)
	assert.Equal(t, "storefront:facets:abc:all:00000000000000ff", c.CacheKey(255))
	c = NewRedisCache(nil, "abc", types.Tvs, 4)
	assert.Equal(t, "storefront:facets:abc:tvs:0000000000000001", c.CacheKey(1))
}

func TestRedisCacheLocalTier(t *testing.T) {
	c := NewRedisCache(nil, "abc", types.Tvs, 4)
	r := &facet.Result{Total: 3}
	c.local.Set(9, r)
	got, ok := c.Get(9)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestRedisCacheRoundtrip(t *testing.T) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		t.Skip("REDIS_URL not set")
	}
	client := NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	writer := NewRedisCache(client, t.Name(), types.Tvs, 4)
	r := &facet.Result{
		Ids:   []types.ItemId{3001, 3002},
		Total: 2,
		Facets: []facet.KeyFacet{
			{Dimension: types.BrandFacet, Label: "Brand", Values: []facet.FacetValue{{Value: "LG", Count: 2}}},
		},
	}
	writer.Set(42, r)

	reader := NewRedisCache(client, t.Name(), types.Tvs, 4)
	got, ok := reader.Get(42)
	require.True(t, ok)
	assert.Equal(t, r, got)
	defer client.Del(context.Background(), writer.CacheKey(42))
}
