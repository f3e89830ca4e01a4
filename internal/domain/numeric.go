package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero like SQL ROUND. Going through decimal
// keeps values such as 2.675 from rounding down.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}

// AccuracyPercentage returns round(correct/total*100, 1) clamped to
// [0,100], or nil when total is zero.
func AccuracyPercentage(correct, total int64) *float64 {
	if total <= 0 {
		return nil
	}
	p := decimal.NewFromInt(correct).Div(decimal.NewFromInt(total)).Mul(hundred).Round(1)
	switch {
	case p.IsNegative():
		p = decimal.Zero
	case p.GreaterThan(hundred):
		p = hundred
	}
	f, _ := p.Float64()
	return &f
}

// MasteryScore is TypeMaster's composite metric, wpm*accuracy/100 rounded to
// one decimal.
func MasteryScore(wpm, accuracy float64) float64 {
	if math.IsNaN(wpm) || math.IsNaN(accuracy) {
		return 0
	}
	f, _ := decimal.NewFromFloat(wpm).Mul(decimal.NewFromFloat(accuracy)).Div(hundred).Round(1).Float64()
	return f
}
