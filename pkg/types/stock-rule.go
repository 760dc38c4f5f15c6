package types

type OutOfStockRule struct {
	NoStockValue float64 `json:"noStockValue"`
}

func (_ *OutOfStockRule) Type() RuleType {
	return "OutOfStockRule"
}

func (_ *OutOfStockRule) New() JsonType {
	return &OutOfStockRule{}
}

func (r *OutOfStockRule) GetValue(item *Product) float64 {
	if item.InStock {
		return 0
	}
	return r.NoStockValue
}
