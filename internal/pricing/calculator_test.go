package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func costs(amounts ...float64) []CostItem {
	items := make([]CostItem, 0, len(amounts))
	for _, a := range amounts {
		items = append(items, NewCostItem("biaya", a))
	}
	return items
}

func TestCalculate_TourPackage(t *testing.T) {
	result := Calculate(ProductData{
		Name:         "Paket Tur",
		SellingPrice: 500000,
		Quantity:     2,
		Costs:        costs(100000, 50000),
	})

	nearlyEqual(t, "totalCost", result.TotalCost, 300000)
	nearlyEqual(t, "revenue", result.Revenue, 1000000)
	nearlyEqual(t, "grossProfit", result.GrossProfit, 700000)
	nearlyEqual(t, "hppPerUnit", result.HPPPerUnit, 150000)
	nearlyEqual(t, "marginPercent", result.MarginPercent, 70.0)
}

func TestCalculate_ZeroSellingPriceGuardsMargin(t *testing.T) {
	result := Calculate(ProductData{SellingPrice: 0, Quantity: 1, Costs: costs(10000)})

	nearlyEqual(t, "totalCost", result.TotalCost, 10000)
	nearlyEqual(t, "revenue", result.Revenue, 0)
	nearlyEqual(t, "grossProfit", result.GrossProfit, -10000)
	nearlyEqual(t, "marginPercent", result.MarginPercent, 0)
}

func TestCalculate_ZeroQuantity(t *testing.T) {
	result := Calculate(ProductData{SellingPrice: 25000, Quantity: 0, Costs: costs(5000, 2500)})

	nearlyEqual(t, "totalCost", result.TotalCost, 0)
	nearlyEqual(t, "hppPerUnit", result.HPPPerUnit, 0)
	nearlyEqual(t, "revenue", result.Revenue, 0)
	nearlyEqual(t, "marginPercent", result.MarginPercent, 0)
	assert.False(t, math.IsNaN(result.HPPPerUnit))
	assert.False(t, math.IsInf(result.MarginPercent, 0))
}

func TestCalculate_EmptyCosts(t *testing.T) {
	result := Calculate(ProductData{Name: "Kopi Susu", SellingPrice: 18000, Quantity: 3})

	nearlyEqual(t, "totalCost", result.TotalCost, 0)
	nearlyEqual(t, "revenue", result.Revenue, 54000)
	nearlyEqual(t, "grossProfit", result.GrossProfit, 54000)
	nearlyEqual(t, "marginPercent", result.MarginPercent, 100)
	assert.False(t, result.ReadyForAnalysis())
}

func TestCalculate_TotalCostIsSumTimesQuantity(t *testing.T) {
	cases := []struct {
		amounts  []float64
		quantity int
		want     float64
	}{
		{nil, 5, 0},
		{[]float64{0.1, 0.2}, 3, 0.9},
		{[]float64{1250.5, 749.5, 1000}, 4, 12000},
		{[]float64{33333}, 7, 233331},
	}

	for _, tc := range cases {
		result := Calculate(ProductData{Quantity: tc.quantity, Costs: costs(tc.amounts...)})
		nearlyEqual(t, "totalCost", result.TotalCost, tc.want)
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	product := ProductData{Name: "Keripik", SellingPrice: 15000, Quantity: 12, Costs: costs(4000, 1500, 750)}

	first := Calculate(product)
	second := Calculate(product)

	assert.Equal(t, first, second)
	assert.Len(t, product.Costs, 3, "input must not be mutated")
}

func TestCalculate_LossMakingMarginIsNegative(t *testing.T) {
	result := Calculate(ProductData{SellingPrice: 8000, Quantity: 2, Costs: costs(10000)})

	nearlyEqual(t, "grossProfit", result.GrossProfit, -4000)
	nearlyEqual(t, "marginPercent", result.MarginPercent, -25)
}

func TestCalculate_NonFiniteAmountsCountAsZero(t *testing.T) {
	var result CalculationResult
	assert.NotPanics(t, func() {
		result = Calculate(ProductData{
			SellingPrice: math.NaN(),
			Quantity:     2,
			Costs:        costs(10000, math.Inf(1), math.Inf(-1)),
		})
	})

	nearlyEqual(t, "totalCost", result.TotalCost, 20000)
	nearlyEqual(t, "revenue", result.Revenue, 0)
	nearlyEqual(t, "marginPercent", result.MarginPercent, 0)
}

func TestClassifyMargin(t *testing.T) {
	tests := []struct {
		margin float64
		want   MarginHealth
	}{
		{-25, MarginLoss},
		{-0.01, MarginLoss},
		{0, MarginThin},
		{14.99, MarginThin},
		{15, MarginFair},
		{29.99, MarginFair},
		{30, MarginHealthy},
		{70, MarginHealthy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyMargin(tt.margin), "margin %v", tt.margin)
	}
}

func TestCalculationResult_Health(t *testing.T) {
	result := Calculate(ProductData{SellingPrice: 500000, Quantity: 2, Costs: costs(100000, 50000)})
	assert.Equal(t, MarginHealthy, result.Health())
}
