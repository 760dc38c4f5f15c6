package types

import "maps"

type ItemList map[ItemId]struct{}

func (i *ItemList) AddId(id ItemId) {
	(*i)[id] = struct{}{}
}

func (i ItemList) Contains(id ItemId) bool {
	_, ok := i[id]
	return ok
}

func (a ItemList) Intersect(b ItemList) {
	for id := range a {
		_, ok := b[id]
		if !ok {
			delete(a, id)
		}
	}
}

func (i ItemList) Merge(other *ItemList) {
	maps.Copy(i, *other)
}

func (i ItemList) Clone() ItemList {
	return maps.Clone(i)
}

// IntersectionCount counts ids present in both lists without allocating.
func (i ItemList) IntersectionCount(other ItemList) int {
	a, b := i, other
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for id := range a {
		if _, ok := b[id]; ok {
			count++
		}
	}
	return count
}
