package types

import (
	"fmt"
	"time"
)

type ItemId uint32

type Category string

const (
	Laptops     Category = "laptops"
	Phones      Category = "phones"
	Tvs         Category = "tvs"
	Desktops    Category = "desktops"
	Printers    Category = "printers"
	Accessories Category = "accessories"
)

var Categories = []Category{Laptops, Phones, Tvs, Desktops, Printers, Accessories}

var categoryLabels = map[Category]string{
	Laptops:     "Laptops",
	Phones:      "Phones",
	Tvs:         "TVs",
	Desktops:    "Desktops",
	Printers:    "Printers",
	Accessories: "Accessories",
}

func ParseCategory(value string) (Category, error) {
	c := Category(value)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return c, nil
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Product is a catalog entry. Records are never mutated after the catalog
// has been loaded; every consumer shares the same values.
type Product struct {
	Id          ItemId    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Brand       string    `json:"brand,omitempty"`
	Processor   string    `json:"processor,omitempty"`
	Ram         string    `json:"ram,omitempty"`
	Storage     string    `json:"storage,omitempty"`
	Price       int       `json:"price"`
	SalePrice   *int      `json:"salePrice,omitempty"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`

	// Seq is the catalog insertion position, assigned on load.
	Seq int `json:"-"`
}

// EffectivePrice is the sale price when present, otherwise the list price.
func (p *Product) EffectivePrice() int {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) Discount() int {
	if p.SalePrice == nil {
		return 0
	}
	return p.Price - *p.SalePrice
}

func (p *Product) HasCreated() bool {
	return !p.CreatedAt.IsZero()
}

// Value returns the nominal attribute for a key dimension, empty when the
// product does not carry it.
func (p *Product) Value(dim Dimension) string {
	switch dim {
	case BrandFacet:
		return p.Brand
	case CategoryFacet:
		return string(p.Category)
	case ProcessorFacet:
		return p.Processor
	case RamFacet:
		return p.Ram
	case StorageFacet:
		return p.Storage
	}
	return ""
}

func (p *Product) Validate() error {
	if _, ok := categoryLabels[p.Category]; !ok {
		return fmt.Errorf("%w %d: unknown category %q", ErrInvalidProduct, p.Id, p.Category)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w %d: negative price %d", ErrInvalidProduct, p.Id, p.Price)
	}
	if p.SalePrice != nil && (*p.SalePrice < 0 || *p.SalePrice > p.Price) {
		return fmt.Errorf("%w %d: sale price %d outside 0-%d", ErrInvalidProduct, p.Id, *p.SalePrice, p.Price)
	}
	if p.Rating < 0 || p.Rating > MaxRating {
		return fmt.Errorf("%w %d: rating %v outside 0-%v", ErrInvalidProduct, p.Id, p.Rating, MaxRating)
	}
	return nil
}

const MaxRating = 5.0
