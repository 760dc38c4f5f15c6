package types

type ItemPopularityRule interface {
	GetValue(item *Product) float64
}

func init() {
	Register(&RatingRule{})
	Register(&DiscountRule{})
	Register(&OutOfStockRule{})
}

type ItemPopularityRules []ItemPopularityRule

func CollectPopularity(item *Product, rules ...ItemPopularityRule) float64 {
	var sum float64
	for _, rule := range rules {
		sum += rule.GetValue(item)
	}

	return sum
}

// DefaultPopularityRules weight rating by review volume, reward discounts and
// push sold out products down.
func DefaultPopularityRules() JsonTypes {
	return JsonTypes{
		&RatingRule{Multiplier: 20, ReviewMultiplier: 4},
		&DiscountRule{Multiplier: 50, ValueIfMatch: 5},
		&OutOfStockRule{NoStockValue: -40},
	}
}
