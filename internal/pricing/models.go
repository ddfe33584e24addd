// models.go - Product, cost and analysis data shared by the calculator, the AI client and the API.

package pricing

import "github.com/google/uuid"

// CostItem is one cost component of a product (bahan baku, tenaga kerja, kemasan, ...)
type CostItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// NewCostItem creates a cost item with a fresh unique ID
func NewCostItem(name string, amount float64) CostItem {
	return CostItem{
		ID:     uuid.New().String(),
		Name:   name,
		Amount: amount,
	}
}

// ProductData is the user's product input. It owns its cost items; order is preserved.
type ProductData struct {
	Name         string     `json:"name"`
	SellingPrice float64    `json:"sellingPrice" binding:"gte=0"`
	Quantity     int        `json:"quantity" binding:"gte=0"`
	Costs        []CostItem `json:"costs" binding:"omitempty,dive"`
}

// Clone returns a copy that does not share the cost slice
func (p ProductData) Clone() ProductData {
	out := p
	out.Costs = append([]CostItem(nil), p.Costs...)
	if out.Costs == nil {
		out.Costs = []CostItem{}
	}
	return out
}

// AIContextData describes the market the product is sold in. Used only as prompt input.
type AIContextData struct {
	BusinessType   string `json:"businessType"`
	Location       string `json:"location"`
	TargetAudience string `json:"targetAudience"`
	Season         string `json:"season"`
	Quality        string `json:"quality"`
}

// CalculationResult is derived from ProductData by Calculate and never edited directly
type CalculationResult struct {
	TotalCost     float64 `json:"totalCost"`
	HPPPerUnit    float64 `json:"hppPerUnit"`
	Revenue       float64 `json:"revenue"`
	GrossProfit   float64 `json:"grossProfit"`
	MarginPercent float64 `json:"marginPercent"`
}

// PriceRange is the market price range estimated by the model
type PriceRange struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

// AIResponseData is the pricing recommendation returned by the model
type AIResponseData struct {
	PriceRange             PriceRange `json:"price_range"`
	RecommendedPrice       float64    `json:"recommended_price"`
	EstimatedMarginPercent float64    `json:"estimated_margin_percent"`
	ShortAnalysis          string     `json:"short_analysis"`
	Warning                string     `json:"warning"`
	StrategySuggestions    []string   `json:"strategy_suggestions"`
}

// AppMode switches between plain calculation and AI-assisted pricing
type AppMode string

const (
	ModeManual     AppMode = "MANUAL"
	ModeAIAssisted AppMode = "AI_ASSISTED"
)

// Valid reports whether m is a known mode
func (m AppMode) Valid() bool {
	return m == ModeManual || m == ModeAIAssisted
}
