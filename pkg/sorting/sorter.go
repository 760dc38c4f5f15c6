package sorting

import (
	"cmp"

	"github.com/matst80/slask-storefront/pkg/types"
)

// entry carries the per-item sort keys computed once before sorting.
type entry struct {
	item  *types.Product
	score float64
	name  string
}

type compareFunc func(a, b *entry) int

type Sorter struct {
	Key     types.SortKey
	Label   string
	compare compareFunc
}

func byId(a, b *entry) int {
	return cmp.Compare(a.item.Id, b.item.Id)
}

// chain runs comparators in order; the id comparison at the end makes every
// sorter total.
func chain(fns ...compareFunc) compareFunc {
	return func(a, b *entry) int {
		for _, fn := range fns {
			if c := fn(a, b); c != 0 {
				return c
			}
		}
		return byId(a, b)
	}
}

func descending(fn compareFunc) compareFunc {
	return func(a, b *entry) int {
		return fn(b, a)
	}
}

func byScore(a, b *entry) int {
	return cmp.Compare(a.score, b.score)
}

func byRating(a, b *entry) int {
	return cmp.Compare(a.item.Rating, b.item.Rating)
}

func byReviews(a, b *entry) int {
	return cmp.Compare(a.item.Reviews, b.item.Reviews)
}

func byPrice(a, b *entry) int {
	return cmp.Compare(a.item.EffectivePrice(), b.item.EffectivePrice())
}

func byName(a, b *entry) int {
	return cmp.Compare(a.name, b.name)
}

// byRecency puts dated products first, newest first, and orders undated
// products by reverse catalog position.
func byRecency(a, b *entry) int {
	ha, hb := a.item.HasCreated(), b.item.HasCreated()
	switch {
	case ha && hb:
		return b.item.CreatedAt.Compare(a.item.CreatedAt)
	case ha:
		return -1
	case hb:
		return 1
	}
	return cmp.Compare(b.item.Seq, a.item.Seq)
}

var sorters = []*Sorter{
	{Key: types.SortPopularity, Label: "Most popular", compare: chain(descending(byScore), descending(byRating))},
	{Key: types.SortPriceLow, Label: "Price: low to high", compare: chain(byPrice)},
	{Key: types.SortPriceHigh, Label: "Price: high to low", compare: chain(descending(byPrice))},
	{Key: types.SortNewest, Label: "Newest", compare: chain(byRecency)},
	{Key: types.SortRating, Label: "Top rated", compare: chain(descending(byRating), descending(byReviews))},
	{Key: types.SortName, Label: "Name: A to Z", compare: chain(byName)},
}

func getSorter(key types.SortKey) (*Sorter, bool) {
	for _, s := range sorters {
		if s.Key == key {
			return s, true
		}
	}
	return nil, false
}
