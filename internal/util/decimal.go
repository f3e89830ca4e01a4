package util

import "github.com/shopspring/decimal"

// DecimalToFloat coerces a scanned NUMERIC to float64. Precision beyond
// float64 is dropped, which is fine for display aggregates.
func DecimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// NullDecimalToFloat maps SQL NULL to 0.
func NullDecimalToFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return DecimalToFloat(d.Decimal)
}
