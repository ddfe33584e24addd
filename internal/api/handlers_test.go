package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dixra/hpp_smart_pricing/internal/ai"
	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"github.com/dixra/hpp_smart_pricing/internal/storage"
	"github.com/dixra/hpp_smart_pricing/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	calls  atomic.Int32
	result *pricing.AIResponseData
	err    error
}

func (f *fakeAnalyzer) RequestPricingAnalysis(ctx context.Context, product pricing.ProductData, marketContext pricing.AIContextData, calc pricing.CalculationResult) (*pricing.AIResponseData, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func sampleRecommendation() *pricing.AIResponseData {
	return &pricing.AIResponseData{
		PriceRange:             pricing.PriceRange{Minimum: 450000, Maximum: 550000},
		RecommendedPrice:       520000,
		EstimatedMarginPercent: 71.15,
		ShortAnalysis:          "Harga masih kompetitif.",
		Warning:                "",
		StrategySuggestions:    []string{"Bundling", "Diskon awal musim"},
	}
}

func setupRouter(analyzer *fakeAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(analyzer, workspace.New(analyzer), storage.NewOptionsCache(nil, 0))
	return NewRouter(h, "*")
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func readyProduct() pricing.ProductData {
	return pricing.ProductData{
		Name:         "Paket Tur Bromo",
		SellingPrice: 500000,
		Quantity:     2,
		Costs: []pricing.CostItem{
			{ID: "a", Name: "Transport", Amount: 100000},
			{ID: "b", Name: "Tiket", Amount: 50000},
		},
	}
}

func TestHealthHandler(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodOptions, "/api/v1/analyze", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptionsHandler_BuiltInLists(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodGet, "/api/v1/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var opts pricing.ContextOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, pricing.DefaultContextOptions(), opts)
}

func TestCalculateHandler(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodPost, "/api/v1/calculate", readyProduct())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calculation      pricing.CalculationResult `json:"calculation"`
		ReadyForAnalysis bool                      `json:"readyForAnalysis"`
		MarginHealth     pricing.MarginHealth      `json:"marginHealth"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 300000.0, resp.Calculation.TotalCost)
	assert.Equal(t, 150000.0, resp.Calculation.HPPPerUnit)
	assert.Equal(t, 1000000.0, resp.Calculation.Revenue)
	assert.Equal(t, 700000.0, resp.Calculation.GrossProfit)
	assert.Equal(t, 70.0, resp.Calculation.MarginPercent)
	assert.True(t, resp.ReadyForAnalysis)
	assert.Equal(t, pricing.MarginHealthy, resp.MarginHealth)
}

func TestCalculateHandler_MalformedBody(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleRecommendation()}
	router := setupRouter(analyzer)

	w := doJSON(router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{Product: readyProduct()})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendation pricing.AIResponseData `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 520000.0, resp.Recommendation.RecommendedPrice)
	assert.Equal(t, int32(1), analyzer.calls.Load())
}

func TestAnalyzeHandler_ValidationRejectsBeforeCall(t *testing.T) {
	tests := []struct {
		name    string
		product pricing.ProductData
		field   string
		message string
	}{
		{
			name:    "blank name",
			product: pricing.ProductData{Name: "   ", Quantity: 1, Costs: []pricing.CostItem{{Name: "Bahan", Amount: 1000}}},
			field:   "name",
			message: pricing.MsgProductNameRequired,
		},
		{
			name:    "no costs",
			product: pricing.ProductData{Name: "Kopi", Quantity: 1},
			field:   "costs",
			message: pricing.MsgCostsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{result: sampleRecommendation()}
			router := setupRouter(analyzer)

			w := doJSON(router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{Product: tt.product})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp["field"])
			assert.Equal(t, tt.message, resp["error"])
			assert.Equal(t, int32(0), analyzer.calls.Load())
		})
	}
}

func TestAnalyzeHandler_FailureIsGeneric(t *testing.T) {
	analyzer := &fakeAnalyzer{err: ai.ErrAnalysisFailed}
	router := setupRouter(analyzer)

	w := doJSON(router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{Product: readyProduct()})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), ai.ErrAnalysisFailed.Error())
}

func TestWorkspaceFlow(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleRecommendation()}
	router := setupRouter(analyzer)

	w := doJSON(router, http.MethodPatch, "/api/v1/workspace/product", map[string]interface{}{
		"name":         "Paket Tur Bromo",
		"sellingPrice": 500000,
		"quantity":     2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/workspace/costs", AddCostRequest{Name: "Transport", Amount: 100000})
	require.Equal(t, http.StatusCreated, w.Code)
	var added struct {
		Cost pricing.CostItem `json:"cost"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	require.NotEmpty(t, added.Cost.ID)

	w = doJSON(router, http.MethodPatch, "/api/v1/workspace/costs/"+added.Cost.ID, map[string]interface{}{"amount": 150000})
	require.Equal(t, http.StatusOK, w.Code)
	var snap workspace.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 300000.0, snap.Calculation.TotalCost)

	w = doJSON(router, http.MethodPut, "/api/v1/workspace/mode", SetModeRequest{Mode: pricing.ModeAIAssisted})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/workspace/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, pricing.ModeAIAssisted, snap.Mode)
	assert.Equal(t, workspace.StatusSucceeded, snap.Analysis.Status)
	require.NotNil(t, snap.Analysis.Result)
	assert.Equal(t, 520000.0, snap.Analysis.Result.RecommendedPrice)

	w = doJSON(router, http.MethodGet, "/api/v1/workspace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"succeeded"`)
}

func TestWorkspace_UnknownCost(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodDelete, "/api/v1/workspace/costs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/workspace/costs/missing", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkspace_RejectsBadInput(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodPut, "/api/v1/workspace/mode", map[string]string{"mode": "AUTO"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/workspace/costs", map[string]interface{}{"name": "Bahan", "amount": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkspaceAnalyze_ValidationAndFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: ai.ErrAnalysisFailed}
	router := setupRouter(analyzer)

	w := doJSON(router, http.MethodPost, "/api/v1/workspace/analyze", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), pricing.MsgProductNameRequired)
	assert.Equal(t, int32(0), analyzer.calls.Load())

	w = doJSON(router, http.MethodPut, "/api/v1/workspace/product", readyProduct())
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/workspace/analyze", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp struct {
		Error     string             `json:"error"`
		Workspace workspace.Snapshot `json:"workspace"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ai.ErrAnalysisFailed.Error(), resp.Error)
	assert.Equal(t, workspace.StatusFailed, resp.Workspace.Analysis.Status)
	assert.Equal(t, int32(1), analyzer.calls.Load())
}

func TestProductBodies_RejectNegativeNumbers(t *testing.T) {
	negativePrice := readyProduct()
	negativePrice.SellingPrice = -1

	negativeQuantity := readyProduct()
	negativeQuantity.Quantity = -3

	negativeCost := readyProduct()
	negativeCost.Costs[1].Amount = -50000

	tests := []struct {
		name    string
		product pricing.ProductData
	}{
		{"negative selling price", negativePrice},
		{"negative quantity", negativeQuantity},
		{"negative cost amount", negativeCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{result: sampleRecommendation()}
			router := setupRouter(analyzer)

			w := doJSON(router, http.MethodPost, "/api/v1/calculate", tt.product)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = doJSON(router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{Product: tt.product})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, int32(0), analyzer.calls.Load())

			w = doJSON(router, http.MethodPut, "/api/v1/workspace/product", tt.product)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCalculateHandler_ZeroQuantityAccepted(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})
	product := readyProduct()
	product.Quantity = 0

	w := doJSON(router, http.MethodPost, "/api/v1/calculate", product)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hppPerUnit":0`)
}

func TestWorkspacePatches_RejectNegativeNumbers(t *testing.T) {
	router := setupRouter(&fakeAnalyzer{})

	w := doJSON(router, http.MethodPatch, "/api/v1/workspace/product", map[string]interface{}{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/workspace/product", map[string]interface{}{"sellingPrice": -100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/workspace/costs", AddCostRequest{Name: "Bahan", Amount: 1000})
	require.Equal(t, http.StatusCreated, w.Code)
	var added struct {
		Cost pricing.CostItem `json:"cost"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))

	w = doJSON(router, http.MethodPatch, "/api/v1/workspace/costs/"+added.Cost.ID, map[string]interface{}{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/workspace", nil)
	var snap workspace.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Product.Quantity)
	assert.Equal(t, 1000.0, snap.Product.Costs[0].Amount)
}
