package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

var item = &Product{
	Id:        1,
	Name:      "Hello",
	Category:  Laptops,
	Price:     200,
	SalePrice: intPtr(100),
	Rating:    4,
	Reviews:   0,
	InStock:   false,
}

func TestOutOfStockRule_GetValue(t *testing.T) {
	res := CollectPopularity(item, &OutOfStockRule{
		NoStockValue: -100,
	})
	assert.Equal(t, -100.0, res)

	inStock := *item
	inStock.InStock = true
	assert.Equal(t, 0.0, CollectPopularity(&inStock, &OutOfStockRule{NoStockValue: -100}))
}

func TestDiscountRule_GetValue(t *testing.T) {
	res := CollectPopularity(item, &DiscountRule{
		Multiplier:   10,
		ValueIfMatch: 100,
	})
	assert.Equal(t, 105.0, res)
}

func TestDiscountRule_NoSalePrice(t *testing.T) {
	full := *item
	full.SalePrice = nil
	assert.Equal(t, 0.0, CollectPopularity(&full, &DiscountRule{Multiplier: 10, ValueIfMatch: 100}))
}

func TestRatingRule_GetValue(t *testing.T) {
	res := CollectPopularity(item, &RatingRule{
		Multiplier:    2,
		SubtractValue: 1,
	})
	assert.Equal(t, 6.0, res)

	reviewed := *item
	reviewed.Reviews = 9
	res = CollectPopularity(&reviewed, &RatingRule{Multiplier: 1, ReviewMultiplier: 2})
	assert.InDelta(t, 4+2*math.Log(10), res, 1e-9)
}

func TestRatingRule_NoRating(t *testing.T) {
	unrated := *item
	unrated.Rating = 0
	assert.Equal(t, -5.0, CollectPopularity(&unrated, &RatingRule{ValueIfNoMatch: -5}))
}

func TestPopularityRulesJson(t *testing.T) {
	data, err := json.Marshal(DefaultPopularityRules())
	require.NoError(t, err)

	var rules JsonTypes
	require.NoError(t, json.Unmarshal(data, &rules))
	require.Len(t, rules, 3)
	assert.Equal(t, RuleType("RatingRule"), rules[0].Type())
	assert.Equal(t, RuleType("OutOfStockRule"), rules[2].Type())
	assert.Equal(t, &DiscountRule{Multiplier: 50, ValueIfMatch: 5}, rules[1])
}

func TestPopularityRulesUnknownType(t *testing.T) {
	var rules JsonTypes
	err := json.Unmarshal([]byte(`[{"$type":"AgedRule"}]`), &rules)
	assert.Error(t, err)
}

func TestSettingsRulesFallback(t *testing.T) {
	s := &Settings{}
	assert.Len(t, s.Rules(), 3)
	assert.Equal(t, SortPopularity, s.GetDefaultSort())

	s.DefaultSort = "bogus"
	assert.Equal(t, SortPopularity, s.GetDefaultSort())
}
