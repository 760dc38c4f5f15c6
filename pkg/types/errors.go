package types

import "errors"

var (
	ErrInvalidDimension = errors.New("invalid facet dimension")
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrInvalidValue     = errors.New("value not present in candidate set")
	ErrInvalidIntent    = errors.New("invalid intent")
	ErrRangeInversion   = errors.New("price range min above max")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrUnknownCategory  = errors.New("unknown category")
)
