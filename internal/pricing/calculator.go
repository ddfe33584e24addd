package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculate derives cost, revenue, profit and margin from the product input.
// It has no side effects and never fails: a zero quantity gives hppPerUnit 0,
// a zero revenue gives marginPercent 0 and NaN or infinite amounts count as 0.
func Calculate(product ProductData) CalculationResult {
	costSum := decimal.Zero
	for _, item := range product.Costs {
		costSum = costSum.Add(finiteDecimal(item.Amount))
	}

	quantity := decimal.NewFromInt(int64(product.Quantity))
	totalCost := costSum.Mul(quantity)
	revenue := finiteDecimal(product.SellingPrice).Mul(quantity)
	grossProfit := revenue.Sub(totalCost)

	hppPerUnit := decimal.Zero
	if product.Quantity > 0 {
		hppPerUnit = totalCost.Div(quantity)
	}

	marginPercent := decimal.Zero
	if revenue.IsPositive() {
		marginPercent = grossProfit.Div(revenue).Mul(hundred)
	}

	return CalculationResult{
		TotalCost:     totalCost.InexactFloat64(),
		HPPPerUnit:    hppPerUnit.InexactFloat64(),
		Revenue:       revenue.InexactFloat64(),
		GrossProfit:   grossProfit.InexactFloat64(),
		MarginPercent: marginPercent.InexactFloat64(),
	}
}

func finiteDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// MarginHealth classifies a margin percentage the way the results panel colours it
type MarginHealth string

const (
	MarginLoss    MarginHealth = "LOSS"
	MarginThin    MarginHealth = "THIN"
	MarginFair    MarginHealth = "FAIR"
	MarginHealthy MarginHealth = "HEALTHY"
)

// ClassifyMargin puts a margin into its band: below 0, below 15, below 30, or above
func ClassifyMargin(marginPercent float64) MarginHealth {
	switch {
	case marginPercent < 0:
		return MarginLoss
	case marginPercent < 15:
		return MarginThin
	case marginPercent < 30:
		return MarginFair
	default:
		return MarginHealthy
	}
}

// Health returns the margin band of the result
func (r CalculationResult) Health() MarginHealth {
	return ClassifyMargin(r.MarginPercent)
}

// ReadyForAnalysis reports whether the result has any cost to price against
func (r CalculationResult) ReadyForAnalysis() bool {
	return r.TotalCost > 0
}
