// interface.go - AI provider interface for pricing analysis

package ai

import (
	"context"

	"github.com/dixra/hpp_smart_pricing/internal/common"
)

// PricingProvider sends one prompt to an LLM in JSON mode, constrained by
// PricingResponseSchema, and returns the raw JSON text of the answer.
type PricingProvider interface {
	// GenerateJSON issues exactly one request. Implementations must not retry.
	GenerateJSON(ctx context.Context, prompt string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error)

	// GetProviderName returns the name of the provider (e.g., "gemini", "mistral")
	GetProviderName() string
}
