// gemini.go - Gemini provider: one JSON-mode GenerateContent call per analysis.

package ai

import (
	"context"
	"fmt"

	"github.com/dixra/hpp_smart_pricing/internal/common"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements PricingProvider with the Gemini SDK
type GeminiProvider struct {
	apiKey    string
	modelName string
	opts      []option.ClientOption
}

// NewGeminiProvider creates a new Gemini provider. Extra client options are appended
// after the API key (endpoint overrides, custom HTTP clients).
func NewGeminiProvider(apiKey, modelName string, opts ...option.ClientOption) *GeminiProvider {
	return &GeminiProvider{
		apiKey:    apiKey,
		modelName: modelName,
		opts:      opts,
	}
}

// GetProviderName returns "gemini"
func (g *GeminiProvider) GetProviderName() string {
	return "gemini"
}

// GenerateJSON sends the prompt with the pricing response schema attached
func (g *GeminiProvider) GenerateJSON(ctx context.Context, prompt string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	clientOpts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.modelName)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(int32(2048)),
	}
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = PricingResponseSchema()

	reqCtx.LogInfo("🔵 Gemini model: %s", g.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", nil, categorizeProviderError("gemini", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil, fmt.Errorf("no response from Gemini API")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		reqCtx.LogWarning("Gemini response was truncated (FinishReason: MAX_TOKENS)")
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", nil, fmt.Errorf("empty response from Gemini API")
	}

	var tokenUsage *common.TokenUsage
	if resp.UsageMetadata != nil {
		usage := common.CalculateTokenCost(
			int(resp.UsageMetadata.PromptTokenCount),
			int(resp.UsageMetadata.CandidatesTokenCount),
		)
		tokenUsage = &usage
	}

	return text, tokenUsage, nil
}

// ptr is a helper function to get a pointer to an int32 value
func ptr(i int32) *int32 {
	return &i
}
