// handlers.go - HTTP handlers for the calculator, the AI analysis and the workspace.

package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"github.com/dixra/hpp_smart_pricing/internal/storage"
	"github.com/dixra/hpp_smart_pricing/internal/workspace"
	"github.com/gin-gonic/gin"
)

// Handler serves the pricing API
type Handler struct {
	analyzer  workspace.Analyzer
	workspace *workspace.Workspace
	options   *storage.OptionsCache
}

// NewHandler wires the handler dependencies
func NewHandler(analyzer workspace.Analyzer, ws *workspace.Workspace, options *storage.OptionsCache) *Handler {
	return &Handler{
		analyzer:  analyzer,
		workspace: ws,
		options:   options,
	}
}

// AnalyzeRequest is the body of a stateless analysis. Context defaults to pricing.DefaultContext.
type AnalyzeRequest struct {
	Product pricing.ProductData    `json:"product"`
	Context *pricing.AIContextData `json:"context"`
}

// AddCostRequest is the body for adding a cost item
type AddCostRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// SetModeRequest is the body for switching modes
type SetModeRequest struct {
	Mode pricing.AppMode `json:"mode" binding:"required"`
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// respondAnalysisError maps analysis errors to status codes; snapshot may be nil
func respondAnalysisError(c *gin.Context, err error, snapshot *workspace.Snapshot) {
	body := gin.H{"error": err.Error()}
	if snapshot != nil {
		body["workspace"] = snapshot
	}

	var vErr *pricing.ValidationError
	switch {
	case errors.As(err, &vErr):
		body["field"] = vErr.Field
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, workspace.ErrSuperseded):
		c.JSON(http.StatusConflict, body)
	default:
		c.JSON(http.StatusBadGateway, body)
	}
}

// HealthHandler reports liveness
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "hpp-smart-pricing",
		"version": "1.0.0",
	})
}

// OptionsHandler returns the market-context suggestion lists
func (h *Handler) OptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.options.Get(c.Request.Context()))
}

// CalculateHandler computes the metrics of a product without touching the workspace
func (h *Handler) CalculateHandler(c *gin.Context) {
	var product pricing.ProductData
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, "Invalid product data", err)
		return
	}

	calc := pricing.Calculate(product)
	c.JSON(http.StatusOK, gin.H{
		"calculation":      calc,
		"readyForAnalysis": calc.ReadyForAnalysis(),
		"marginHealth":     calc.Health(),
	})
}

// AnalyzeHandler validates a product and requests one AI recommendation for it
func (h *Handler) AnalyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid analysis request", err)
		return
	}

	marketContext := pricing.DefaultContext()
	if req.Context != nil {
		marketContext = *req.Context
	}

	calc := pricing.Calculate(req.Product)
	if err := pricing.ValidateForAnalysis(req.Product, calc); err != nil {
		respondAnalysisError(c, err, nil)
		return
	}

	result, err := h.analyzer.RequestPricingAnalysis(c.Request.Context(), req.Product, marketContext, calc)
	if err != nil {
		respondAnalysisError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calculation":    calc,
		"recommendation": result,
	})
}

// GetWorkspaceHandler returns the workspace state
func (h *Handler) GetWorkspaceHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Snapshot())
}

// PutProductHandler replaces the workspace product
func (h *Handler) PutProductHandler(c *gin.Context) {
	var product pricing.ProductData
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, "Invalid product data", err)
		return
	}
	c.JSON(http.StatusOK, h.workspace.SetProduct(product))
}

// PatchProductHandler edits name, selling price or quantity
func (h *Handler) PatchProductHandler(c *gin.Context) {
	var patch workspace.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid product data", err)
		return
	}
	c.JSON(http.StatusOK, h.workspace.UpdateProduct(patch))
}

// AddCostHandler appends a cost item
func (h *Handler) AddCostHandler(c *gin.Context) {
	var req AddCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid cost item", err)
		return
	}

	item, snapshot := h.workspace.AddCost(req.Name, req.Amount)
	c.JSON(http.StatusCreated, gin.H{
		"cost":      item,
		"workspace": snapshot,
	})
}

// PatchCostHandler edits a cost item by ID
func (h *Handler) PatchCostHandler(c *gin.Context) {
	var patch workspace.CostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid cost item", err)
		return
	}

	snapshot, err := h.workspace.UpdateCost(c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// DeleteCostHandler removes a cost item by ID
func (h *Handler) DeleteCostHandler(c *gin.Context) {
	snapshot, err := h.workspace.RemoveCost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PutContextHandler replaces the market context
func (h *Handler) PutContextHandler(c *gin.Context) {
	var marketContext pricing.AIContextData
	if err := c.ShouldBindJSON(&marketContext); err != nil {
		badRequest(c, "Invalid market context", err)
		return
	}
	c.JSON(http.StatusOK, h.workspace.SetContext(marketContext))
}

// PutModeHandler switches between MANUAL and AI_ASSISTED
func (h *Handler) PutModeHandler(c *gin.Context) {
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid mode", err)
		return
	}

	snapshot, err := h.workspace.SetMode(req.Mode)
	if err != nil {
		badRequest(c, "Invalid mode", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AnalyzeWorkspaceHandler runs an analysis on the workspace product and waits for it
func (h *Handler) AnalyzeWorkspaceHandler(c *gin.Context) {
	snapshot, err := h.workspace.Analyze(c.Request.Context())
	if err != nil {
		if errors.Is(err, workspace.ErrSuperseded) {
			log.Printf("Workspace analysis superseded by generation %d", snapshot.Analysis.Generation)
		}
		respondAnalysisError(c, err, &snapshot)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
