package types

import "math"

type RatingRule struct {
	Multiplier       float64 `json:"multiplier,omitempty"`
	ReviewMultiplier float64 `json:"reviewMultiplier,omitempty"`
	SubtractValue    float64 `json:"subtractValue,omitempty"`
	ValueIfNoMatch   float64 `json:"valueIfNoMatch,omitempty"`
}

func (r *RatingRule) Type() RuleType {
	return "RatingRule"
}

func (r *RatingRule) New() JsonType {
	return &RatingRule{}
}

func (r *RatingRule) GetValue(item *Product) float64 {
	multiplier := r.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	if item.Rating == 0 && item.Reviews == 0 {
		return r.ValueIfNoMatch
	}
	return (item.Rating-r.SubtractValue)*multiplier + math.Log1p(float64(item.Reviews))*r.ReviewMultiplier
}
