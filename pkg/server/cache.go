package server

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache shares evaluation results between storefront instances. A local
// memory tier answers repeated lookups without a round trip.
type RedisCache struct {
	client     *redis.Client
	prefix     string
	expiration time.Duration
	timeout    time.Duration
	local      *facet.MemoryCache
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache stores results below namespace, which should change whenever
// the catalog does.
func NewRedisCache(client *redis.Client, namespace string, category types.Category, localSize int) *RedisCache {
	name := string(category)
	if name == "" {
		name = "all"
	}
	return &RedisCache{
		client:     client,
		prefix:     fmt.Sprintf("storefront:facets:%s:%s", namespace, name),
		expiration: 10 * time.Minute,
		timeout:    200 * time.Millisecond,
		local:      facet.NewMemoryCache(localSize),
	}
}

func (c *RedisCache) CacheKey(key uint64) string {
	return fmt.Sprintf("%s:%016x", c.prefix, key)
}

func (c *RedisCache) Get(key uint64) (*facet.Result, bool) {
	if r, ok := c.local.Get(key); ok {
		return r, true
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	data, err := c.client.Get(ctx, c.CacheKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("redis cache read failed")
		}
		return nil, false
	}
	r := &facet.Result{}
	if err = sonic.Unmarshal(data, r); err != nil {
		log.Warn().Err(err).Msg("dropping undecodable cache entry")
		return nil, false
	}
	c.local.Set(key, r)
	return r, true
}

func (c *RedisCache) Set(key uint64, result *facet.Result) {
	c.local.Set(key, result)
	data, err := sonic.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("could not encode evaluation")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err = c.client.Set(ctx, c.CacheKey(key), data, c.expiration).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache write failed")
	}
}
