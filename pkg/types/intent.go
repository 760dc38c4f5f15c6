package types

type IntentKind string

const (
	ToggleIntent IntentKind = "toggle"
	RemoveIntent IntentKind = "remove"
	ClearIntent  IntentKind = "clear"
	PriceIntent  IntentKind = "price"
	SortIntent   IntentKind = "sort"
)

// Intent is a named mutation request for a filter store.
type Intent struct {
	Kind      IntentKind `json:"kind"`
	Dimension Dimension  `json:"dimension,omitempty"`
	Value     string     `json:"value,omitempty"`
	Min       int        `json:"min,omitempty"`
	Max       int        `json:"max,omitempty"`
	Sort      SortKey    `json:"sort,omitempty"`
}

func Toggle(dim Dimension, value string) Intent {
	return Intent{Kind: ToggleIntent, Dimension: dim, Value: value}
}

func Remove(dim Dimension, value string) Intent {
	return Intent{Kind: RemoveIntent, Dimension: dim, Value: value}
}

func Clear() Intent {
	return Intent{Kind: ClearIntent}
}

func SetPrice(minValue, maxValue int) Intent {
	return Intent{Kind: PriceIntent, Min: minValue, Max: maxValue}
}

func SetSort(key SortKey) Intent {
	return Intent{Kind: SortIntent, Sort: key}
}
