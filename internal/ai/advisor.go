// advisor.go - One-shot AI pricing analysis

package ai

import (
	"context"
	"errors"

	"github.com/dixra/hpp_smart_pricing/configs"
	"github.com/dixra/hpp_smart_pricing/internal/common"
	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"github.com/dixra/hpp_smart_pricing/internal/ratelimit"
)

// ErrAnalysisFailed is the only error RequestPricingAnalysis returns.
// The underlying cause goes to the request log.
var ErrAnalysisFailed = errors.New("Gagal menganalisis harga. Silakan coba lagi.")

// Advisor requests pricing recommendations from a PricingProvider
type Advisor struct {
	provider PricingProvider
	limiter  *ratelimit.RateLimiter
}

// NewAdvisor creates an advisor. limiter may be nil.
func NewAdvisor(provider PricingProvider, limiter *ratelimit.RateLimiter) *Advisor {
	return &Advisor{
		provider: provider,
		limiter:  limiter,
	}
}

// RequestPricingAnalysis sends exactly one request to the provider and returns the parsed
// recommendation. It trusts the caller for input validation (see pricing.ValidateForAnalysis).
// Every failure, including cancellation of ctx, is reported as ErrAnalysisFailed.
func (a *Advisor) RequestPricingAnalysis(
	ctx context.Context,
	product pricing.ProductData,
	marketContext pricing.AIContextData,
	calc pricing.CalculationResult,
) (*pricing.AIResponseData, error) {
	reqCtx := common.NewRequestContext(product.Name)
	reqCtx.StartStep("pricing_analysis")

	result, tokens, err := a.analyze(ctx, product, marketContext, calc, reqCtx)
	if err != nil {
		reqCtx.EndSubStep("FAILED")
		reqCtx.EndStep("failed", tokens, err)
		var pErr *ProviderError
		if errors.As(err, &pErr) {
			reqCtx.LogError("Provider %s failed (%s): %s", pErr.Provider, pErr.Category, pErr.Message)
		}
		reqCtx.GetSummary()
		return nil, ErrAnalysisFailed
	}

	reqCtx.EndStep("success", tokens, nil)
	reqCtx.GetSummary()
	return result, nil
}

func (a *Advisor) analyze(
	ctx context.Context,
	product pricing.ProductData,
	marketContext pricing.AIContextData,
	calc pricing.CalculationResult,
	reqCtx *common.RequestContext,
) (*pricing.AIResponseData, *common.TokenUsage, error) {
	if a.limiter != nil {
		reqCtx.StartSubStep("wait_rate_limit")
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, nil, categorizeProviderError(a.provider.GetProviderName(), err)
		}
		reqCtx.EndSubStep("")
	}

	reqCtx.StartSubStep("build_prompt")
	prompt := BuildPricingPrompt(product, marketContext, calc)
	reqCtx.EndSubStep("")

	reqCtx.StartSubStep("call_ai_api")
	text, tokens, err := a.provider.GenerateJSON(ctx, prompt, reqCtx)
	if err != nil {
		return nil, nil, err
	}
	reqCtx.EndSubStep(a.provider.GetProviderName())

	if configs.LOG_AI_RAW_RESPONSE {
		reqCtx.LogInfo("📦 Raw response: %s", text)
	}

	reqCtx.StartSubStep("parse_json_response")
	if text == "" {
		return nil, tokens, errors.New("provider returned no text")
	}
	result, err := ParsePricingResponse(text)
	if err != nil {
		preview := text
		if len(preview) > 500 {
			preview = preview[:500] + "... (truncated)"
		}
		reqCtx.LogWarning("Invalid pricing JSON: %v. Preview: %s", err, preview)
		return nil, tokens, err
	}
	reqCtx.EndSubStep("")

	return result, tokens, nil
}
