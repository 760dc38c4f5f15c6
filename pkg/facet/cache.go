package facet

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache memoizes evaluations by filter hash. Implementations may drop
// entries at any time; a miss only costs a recomputation.
type ResultCache interface {
	Get(key uint64) (*Result, bool)
	Set(key uint64, result *Result)
}

// MemoryCache keeps the most recently used evaluations of one shelf.
type MemoryCache struct {
	entries *lru.Cache[uint64, *Result]
}

func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 64
	}
	// New only fails for a non-positive size.
	entries, _ := lru.New[uint64, *Result](size)
	return &MemoryCache{entries: entries}
}

func (c *MemoryCache) Get(key uint64) (*Result, bool) {
	return c.entries.Get(key)
}

func (c *MemoryCache) Set(key uint64, result *Result) {
	c.entries.Add(key, result)
}

func (c *MemoryCache) Len() int {
	return c.entries.Len()
}
