// Package workspace holds the single pricing workspace of the process: the product being
// priced, its market context, the UI mode and the status of the latest AI analysis.
package workspace

import (
	"context"
	"errors"
	"sync"

	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"github.com/google/uuid"
)

var (
	ErrCostNotFound = errors.New("komponen biaya tidak ditemukan")
	ErrInvalidMode  = errors.New("mode tidak dikenal")
	// ErrSuperseded is returned to an analysis whose result was discarded
	// because a newer analysis started after it.
	ErrSuperseded = errors.New("analisis digantikan oleh permintaan yang lebih baru")
)

// Analyzer requests a pricing recommendation. *ai.Advisor implements it.
type Analyzer interface {
	RequestPricingAnalysis(
		ctx context.Context,
		product pricing.ProductData,
		marketContext pricing.AIContextData,
		calc pricing.CalculationResult,
	) (*pricing.AIResponseData, error)
}

// Snapshot is a consistent copy of the workspace. Calculation is always derived
// from Product at the moment the snapshot is taken.
type Snapshot struct {
	Mode            pricing.AppMode           `json:"mode"`
	Product         pricing.ProductData       `json:"product"`
	Context         pricing.AIContextData     `json:"context"`
	Calculation     pricing.CalculationResult `json:"calculation"`
	Analysis        Analysis                  `json:"analysis"`
	ValidationError string                    `json:"validationError,omitempty"`
}

// CostPatch carries the fields of a cost item to change; nil fields are kept
type CostPatch struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
}

// ProductPatch carries product fields to change; nil fields are kept
type ProductPatch struct {
	Name         *string  `json:"name"`
	SellingPrice *float64 `json:"sellingPrice" binding:"omitempty,gte=0"`
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// Workspace is safe for concurrent use
type Workspace struct {
	analyzer Analyzer

	mu              sync.Mutex
	mode            pricing.AppMode
	product         pricing.ProductData
	marketContext   pricing.AIContextData
	analysis        Analysis
	validationError string
	generation      uint64
	cancelInFlight  context.CancelFunc
}

// New creates a workspace in manual mode with an empty product and the default context
func New(analyzer Analyzer) *Workspace {
	return &Workspace{
		analyzer:      analyzer,
		mode:          pricing.ModeManual,
		product:       pricing.DefaultProduct(),
		marketContext: pricing.DefaultContext(),
		analysis:      idleAnalysis(),
	}
}

// Snapshot returns the current state
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() Snapshot {
	product := w.product.Clone()
	return Snapshot{
		Mode:            w.mode,
		Product:         product,
		Context:         w.marketContext,
		Calculation:     pricing.Calculate(product),
		Analysis:        w.analysis,
		ValidationError: w.validationError,
	}
}

// SetProduct replaces the whole product. Cost items without an ID get one.
func (w *Workspace) SetProduct(product pricing.ProductData) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	product = product.Clone()
	for i := range product.Costs {
		if product.Costs[i].ID == "" {
			product.Costs[i].ID = uuid.New().String()
		}
	}
	w.product = product
	return w.snapshotLocked()
}

// UpdateProduct edits the product fields other than its costs
func (w *Workspace) UpdateProduct(patch ProductPatch) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if patch.Name != nil {
		w.product.Name = *patch.Name
	}
	if patch.SellingPrice != nil {
		w.product.SellingPrice = *patch.SellingPrice
	}
	if patch.Quantity != nil {
		w.product.Quantity = *patch.Quantity
	}
	return w.snapshotLocked()
}

// AddCost appends a cost item and returns it with its new ID
func (w *Workspace) AddCost(name string, amount float64) (pricing.CostItem, Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	item := pricing.NewCostItem(name, amount)
	w.product.Costs = append(w.product.Costs, item)
	return item, w.snapshotLocked()
}

// UpdateCost edits a cost item in place
func (w *Workspace) UpdateCost(id string, patch CostPatch) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.product.Costs {
		if w.product.Costs[i].ID != id {
			continue
		}
		if patch.Name != nil {
			w.product.Costs[i].Name = *patch.Name
		}
		if patch.Amount != nil {
			w.product.Costs[i].Amount = *patch.Amount
		}
		return w.snapshotLocked(), nil
	}
	return w.snapshotLocked(), ErrCostNotFound
}

// RemoveCost deletes a cost item, keeping the order of the others
func (w *Workspace) RemoveCost(id string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, item := range w.product.Costs {
		if item.ID == id {
			costs := make([]pricing.CostItem, 0, len(w.product.Costs)-1)
			costs = append(costs, w.product.Costs[:i]...)
			costs = append(costs, w.product.Costs[i+1:]...)
			w.product.Costs = costs
			return w.snapshotLocked(), nil
		}
	}
	return w.snapshotLocked(), ErrCostNotFound
}

// SetContext replaces the market context
func (w *Workspace) SetContext(marketContext pricing.AIContextData) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.marketContext = marketContext
	return w.snapshotLocked()
}

// SetMode switches between manual and AI-assisted mode
func (w *Workspace) SetMode(mode pricing.AppMode) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !mode.Valid() {
		return w.snapshotLocked(), ErrInvalidMode
	}
	w.mode = mode
	return w.snapshotLocked(), nil
}

// Analyze validates the product and runs one AI analysis on it.
//
// A validation failure is returned as *pricing.ValidationError and leaves the analysis
// state untouched. Otherwise any analysis still in flight is cancelled and replaced: the
// new request gets the next generation, and a response is only committed while its
// generation is the latest. A replaced request returns ErrSuperseded.
func (w *Workspace) Analyze(ctx context.Context) (Snapshot, error) {
	w.mu.Lock()
	product := w.product.Clone()
	marketContext := w.marketContext
	calc := pricing.Calculate(product)

	if err := pricing.ValidateForAnalysis(product, calc); err != nil {
		w.validationError = err.Error()
		snapshot := w.snapshotLocked()
		w.mu.Unlock()
		return snapshot, err
	}
	w.validationError = ""

	if w.cancelInFlight != nil {
		w.cancelInFlight()
	}
	w.generation++
	generation := w.generation
	runCtx, cancel := context.WithCancel(ctx)
	w.cancelInFlight = cancel
	w.analysis = inFlightAnalysis(generation)
	w.mu.Unlock()

	result, err := w.analyzer.RequestPricingAnalysis(runCtx, product, marketContext, calc)

	w.mu.Lock()
	defer w.mu.Unlock()
	cancel()

	if generation != w.generation {
		return w.snapshotLocked(), ErrSuperseded
	}
	w.cancelInFlight = nil

	if err != nil {
		w.analysis = failedAnalysis(generation, err.Error())
		return w.snapshotLocked(), err
	}
	w.analysis = succeededAnalysis(generation, result)
	return w.snapshotLocked(), nil
}
