package money

import "github.com/shopspring/decimal"

// Monetary amounts are stored as float64 on the models; every computation
// runs through decimal and is rounded to 2 places before persisting so
// repeated arithmetic cannot drift.

// Round2 rounds an amount to 2 decimal places, half away from zero.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Percent returns pct% of amount, rounded to 2 decimal places.
func Percent(amount, pct float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// Line returns unitPrice multiplied by quantity, rounded to 2 decimal places.
func Line(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// Sum adds amounts without accumulating float error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

// HourlyCost charges durationMinutes at an hourly rate, rounded to 2
// decimal places. Partial hours are billed pro rata.
func HourlyCost(durationMinutes int, hourlyRate float64) float64 {
	return decimal.NewFromInt(int64(durationMinutes)).
		Div(decimal.NewFromInt(60)).
		Mul(decimal.NewFromFloat(hourlyRate)).
		Round(2).
		InexactFloat64()
}

// Floor0 clamps a computed amount at zero. Discounts can never push a
// total negative.
func Floor0(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}
