package catalog

import (
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/matst80/slask-storefront/pkg/types"
)

//go:embed catalog.json
var defaultCatalog []byte

type CategoryCount struct {
	Category types.Category `json:"id"`
	Label    string         `json:"name"`
	Count    int            `json:"count"`
}

// Catalog is the read-only product collection shared by all pages.
type Catalog struct {
	products    []types.Product
	byId        map[types.ItemId]int
	byCategory  map[types.Category][]int
	fingerprint uint64
}

// New validates products and records their insertion order.
func New(products []types.Product) (*Catalog, error) {
	c := &Catalog{
		products:   make([]types.Product, len(products)),
		byId:       make(map[types.ItemId]int, len(products)),
		byCategory: make(map[types.Category][]int),
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byId[p.Id]; ok {
			return nil, fmt.Errorf("%w %d: duplicate id", types.ErrInvalidProduct, p.Id)
		}
		p.Seq = i
		c.products[i] = p
		c.byId[p.Id] = i
		c.byCategory[p.Category] = append(c.byCategory[p.Category], i)
	}
	data, err := sonic.Marshal(c.products)
	if err != nil {
		return nil, err
	}
	c.fingerprint = xxhash.Sum64(data)
	return c, nil
}

// Fingerprint changes whenever any product or the catalog order changes.
func (c *Catalog) Fingerprint() string {
	return fmt.Sprintf("%016x", c.fingerprint)
}

func FromJson(data []byte) (*Catalog, error) {
	var products []types.Product
	if err := sonic.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return New(products)
}

// Default returns the built in electronics catalog.
func Default() (*Catalog, error) {
	return FromJson(defaultCatalog)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Get(id types.ItemId) (types.Product, bool) {
	idx, ok := c.byId[id]
	if !ok {
		return types.Product{}, false
	}
	return c.products[idx], true
}

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []types.Product {
	ret := make([]types.Product, len(c.products))
	copy(ret, c.products)
	return ret
}

// ByCategory returns the candidate set for one category, or the full catalog
// when category is empty.
func (c *Catalog) ByCategory(category types.Category) []types.Product {
	if category == "" {
		return c.All()
	}
	indexes := c.byCategory[category]
	ret := make([]types.Product, len(indexes))
	for i, idx := range indexes {
		ret[i] = c.products[idx]
	}
	return ret
}

func (c *Catalog) Categories() []CategoryCount {
	ret := make([]CategoryCount, 0, len(types.Categories))
	for _, cat := range types.Categories {
		ret = append(ret, CategoryCount{
			Category: cat,
			Label:    cat.Label(),
			Count:    len(c.byCategory[cat]),
		})
	}
	return ret
}
