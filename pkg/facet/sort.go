package facet

import (
	"cmp"
	"strconv"
	"strings"
	"unicode"

	"github.com/maruel/natural"
)

var sizeUnits = map[string]float64{
	"kb": 1 << 10,
	"mb": 1 << 20,
	"gb": 1 << 30,
	"tb": 1 << 40,
}

// parseSize reads a leading capacity like "16GB" or "1 TB".
func parseSize(value string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if end <= 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	rest := strings.TrimSpace(s[end:])
	if len(rest) < 2 {
		return 0, false
	}
	unit, ok := sizeUnits[rest[:2]]
	if !ok {
		return 0, false
	}
	return n * unit, true
}

// CompareValues orders facet values: capacities by size, everything else in
// natural order ("i5" before "i10"), falling back to plain string order so
// the result is total.
func CompareValues(a, b string) int {
	if sa, ok := parseSize(a); ok {
		if sb, ok := parseSize(b); ok {
			if c := cmp.Compare(sa, sb); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		}
	}
	if c := naturalCompare(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// naturalCompare orders digit runs by value and letters case insensitively.
func naturalCompare(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case natural.Less(la, lb):
		return -1
	case natural.Less(lb, la):
		return 1
	}
	return 0
}
