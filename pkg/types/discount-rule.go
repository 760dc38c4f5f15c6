package types

type DiscountRule struct {
	Multiplier   float64 `json:"multiplier"`
	ValueIfMatch float64 `json:"valueIfMatch"`
}

func (_ *DiscountRule) Type() RuleType {
	return "DiscountRule"
}

func (_ *DiscountRule) New() JsonType {
	return &DiscountRule{}
}

func (r *DiscountRule) GetValue(item *Product) float64 {
	discount := item.Discount()
	if discount <= 0 || item.Price == 0 {
		return 0
	}
	p := float64(discount) / float64(item.Price)
	return r.ValueIfMatch + p*r.Multiplier
}
