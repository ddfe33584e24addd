// request_context.go - Request tracking and logging for pricing analyses

package common

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dixra/hpp_smart_pricing/configs"
	"github.com/google/uuid"
)

// RequestContext tracks one analysis request with timing and token cost
type RequestContext struct {
	RequestID           string
	Product             string
	StartTime           time.Time
	Steps               []StepLog
	TotalTokens         TokenUsage
	CurrentStep         string
	CurrentStepStart    time.Time
	CurrentSubSteps     []SubStepLog
	CurrentSubStep      string
	CurrentSubStepStart time.Time
}

// StepLog represents a single processing step
type StepLog struct {
	Name      string       `json:"name"`
	StartTime time.Time    `json:"start_time"`
	Duration  int64        `json:"duration_ms"`
	Status    string       `json:"status"` // "success", "failed", "cancelled"
	Tokens    *TokenUsage  `json:"tokens,omitempty"`
	Error     string       `json:"error,omitempty"`
	SubSteps  []SubStepLog `json:"sub_steps,omitempty"`
}

// SubStepLog represents a detailed sub-operation within a step
type SubStepLog struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Duration  int64     `json:"duration_ms"`
	Details   string    `json:"details,omitempty"`
}

// TokenUsage tracks API token consumption
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	CostIDR      float64 `json:"cost_idr"`
}

// NewRequestContext creates a new request tracking context
func NewRequestContext(product string) *RequestContext {
	reqID := uuid.New().String()
	now := time.Now()

	log.Printf("[%s] 🚀 Analisis harga baru | Produk: %s | Waktu: %s", reqID, product, now.Format("15:04:05"))

	return &RequestContext{
		RequestID:   reqID,
		Product:     product,
		StartTime:   now,
		Steps:       []StepLog{},
		TotalTokens: TokenUsage{},
	}
}

// Log labels per step and sub-step; unknown names are logged as-is
var (
	stepLabels = map[string]string{
		"pricing_analysis": "💡 Analisis harga dengan AI",
	}
	subStepLabels = map[string]string{
		"wait_rate_limit":     "⏳ Menunggu kuota API",
		"build_prompt":        "📢 Menyusun prompt",
		"call_ai_api":         "🚀 Memanggil AI",
		"parse_json_response": "🔄 Membaca hasil JSON",
	}
)

func label(labels map[string]string, name string) string {
	if l, ok := labels[name]; ok {
		return l
	}
	return name
}

// StartStep begins tracking a new processing step
func (rc *RequestContext) StartStep(stepName string) {
	rc.CurrentStep = stepName
	rc.CurrentStepStart = time.Now()
	log.Printf("[%s] ┌── %s", rc.RequestID, label(stepLabels, stepName))
}

// EndStep completes the current step and records timing
func (rc *RequestContext) EndStep(status string, tokens *TokenUsage, err error) {
	duration := time.Since(rc.CurrentStepStart).Milliseconds()

	stepLog := StepLog{
		Name:      rc.CurrentStep,
		StartTime: rc.CurrentStepStart,
		Duration:  duration,
		Status:    status,
		Tokens:    tokens,
		SubSteps:  rc.CurrentSubSteps,
	}

	if err != nil {
		stepLog.Error = err.Error()
		log.Printf("[%s] ❌ FAILED - %s (%.2fs) - Error: %v",
			rc.RequestID, rc.CurrentStep, float64(duration)/1000, err)
	} else {
		logMsg := fmt.Sprintf("[%s] └── ✅ Selesai: %.2fdtk", rc.RequestID, float64(duration)/1000)

		if tokens != nil {
			rc.TotalTokens.add(*tokens)
			logMsg += fmt.Sprintf(" | 🪙 Tokens: %d masuk + %d keluar = %d | 💰 Biaya: Rp%.2f",
				tokens.InputTokens, tokens.OutputTokens, tokens.TotalTokens, tokens.CostIDR)
		}

		if len(rc.CurrentSubSteps) > 0 {
			logMsg += fmt.Sprintf(" | sub-langkah: %d", len(rc.CurrentSubSteps))
		}

		log.Print(logMsg)
	}

	rc.Steps = append(rc.Steps, stepLog)
	rc.CurrentStep = ""
	rc.CurrentSubSteps = []SubStepLog{}
}

func (u *TokenUsage) add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.CostUSD += other.CostUSD
	u.CostIDR += other.CostIDR
}

// CalculateTokenCost computes USD and IDR cost from token counts
func CalculateTokenCost(inputTokens, outputTokens int) TokenUsage {
	inputCost := float64(inputTokens) * configs.AI_INPUT_PRICE_PER_MILLION / 1_000_000
	outputCost := float64(outputTokens) * configs.AI_OUTPUT_PRICE_PER_MILLION / 1_000_000
	costUSD := inputCost + outputCost

	return TokenUsage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		CostUSD:      costUSD,
		CostIDR:      costUSD * configs.USD_TO_IDR,
	}
}

// StartSubStep begins tracking a detailed sub-operation
func (rc *RequestContext) StartSubStep(subStepName string) {
	rc.CurrentSubStep = subStepName
	rc.CurrentSubStepStart = time.Now()
	log.Printf("[%s]    ├─ %s...", rc.RequestID, label(subStepLabels, subStepName))
}

// EndSubStep completes the current sub-step and records timing
func (rc *RequestContext) EndSubStep(details string) {
	if rc.CurrentSubStep == "" {
		return
	}

	duration := time.Since(rc.CurrentSubStepStart).Milliseconds()

	rc.CurrentSubSteps = append(rc.CurrentSubSteps, SubStepLog{
		Name:      rc.CurrentSubStep,
		StartTime: rc.CurrentSubStepStart,
		Duration:  duration,
		Details:   details,
	})

	detailsMsg := ""
	if details != "" {
		detailsMsg = " | " + details
	}
	log.Printf("[%s]    └─ %.2fdtk%s", rc.RequestID, float64(duration)/1000, detailsMsg)

	rc.CurrentSubStep = ""
}

// LogInfo logs info-level message with request ID prefix
func (rc *RequestContext) LogInfo(format string, args ...interface{}) {
	log.Printf("[%s] ℹ️  %s", rc.RequestID, fmt.Sprintf(format, args...))
}

// LogWarning logs warning-level message with request ID prefix
func (rc *RequestContext) LogWarning(format string, args ...interface{}) {
	log.Printf("[%s] ⚠️  %s", rc.RequestID, fmt.Sprintf(format, args...))
}

// LogError logs error-level message with request ID prefix
func (rc *RequestContext) LogError(format string, args ...interface{}) {
	log.Printf("[%s] ❌ %s", rc.RequestID, fmt.Sprintf(format, args...))
}

// Summary is the outcome of one request as written to the final log line
type Summary struct {
	RequestID       string           `json:"request_id"`
	Product         string           `json:"product"`
	TotalDurationMs int64            `json:"total_duration_ms"`
	StepDurationsMs map[string]int64 `json:"step_durations_ms"`
	TotalSteps      int              `json:"total_steps"`
	Tokens          TokenUsage       `json:"tokens"`
}

// GetSummary logs and returns the totals of the request
func (rc *RequestContext) GetSummary() Summary {
	summary := Summary{
		RequestID:       rc.RequestID,
		Product:         rc.Product,
		TotalDurationMs: time.Since(rc.StartTime).Milliseconds(),
		StepDurationsMs: make(map[string]int64, len(rc.Steps)),
		TotalSteps:      len(rc.Steps),
		Tokens:          rc.TotalTokens,
	}
	for _, step := range rc.Steps {
		summary.StepDurationsMs[step.Name] += step.Duration
	}

	log.Printf("[%s] 🎯 Total: %.2fdtk | 📝 Langkah: %d | 🪙 Tokens: %s | 💰 Biaya: Rp%.2f ($%.4f)",
		rc.RequestID,
		float64(summary.TotalDurationMs)/1000,
		summary.TotalSteps,
		formatNumber(summary.Tokens.TotalTokens),
		summary.Tokens.CostIDR,
		summary.Tokens.CostUSD)

	return summary
}

// formatNumber groups digits with dots (id-ID style)
func formatNumber(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
