// mistral.go - Mistral chat-completions provider using JSON schema response format

package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/dixra/hpp_smart_pricing/internal/common"
	"github.com/go-resty/resty/v2"
)

// MistralProvider implements PricingProvider for Mistral AI
type MistralProvider struct {
	apiKey    string
	modelName string
	client    *resty.Client
}

// NewMistralProvider creates a new Mistral AI provider
func NewMistralProvider(apiKey, modelName, baseURL string) *MistralProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &MistralProvider{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}
}

// GetProviderName returns "mistral"
func (m *MistralProvider) GetProviderName() string {
	return "mistral"
}

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralJSONSchema struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
	Strict bool                   `json:"strict"`
}

type mistralResponseFormat struct {
	Type       string             `json:"type"` // "json_object" or "json_schema"
	JSONSchema *mistralJSONSchema `json:"json_schema,omitempty"`
}

type mistralChatRequest struct {
	Model          string                `json:"model"`
	Messages       []mistralMessage      `json:"messages"`
	Temperature    float64               `json:"temperature"`
	MaxTokens      int                   `json:"max_tokens"`
	ResponseFormat mistralResponseFormat `json:"response_format"`
}

type mistralChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int            `json:"index"`
		Message      mistralMessage `json:"message"`
		FinishReason string         `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type mistralErrorResponse struct {
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Code    interface{} `json:"code"`
}

// GenerateJSON sends one chat completion request constrained to the pricing schema
func (m *MistralProvider) GenerateJSON(ctx context.Context, prompt string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	reqCtx.LogInfo("🔷 Mistral model: %s", m.modelName)

	request := mistralChatRequest{
		Model: m.modelName,
		Messages: []mistralMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   2048,
		ResponseFormat: mistralResponseFormat{
			Type: "json_schema",
			JSONSchema: &mistralJSONSchema{
				Name:   "pricing_analysis",
				Schema: schemaToJSONSchema(PricingResponseSchema()),
				Strict: true,
			},
		},
	}

	var result mistralChatResponse
	var apiErr mistralErrorResponse

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetBody(request).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/chat/completions")
	if err != nil {
		return "", nil, categorizeProviderError("mistral", err)
	}

	if resp.IsError() {
		message := apiErr.Message
		if message == "" {
			message = resp.String()
		}
		return "", nil, newHTTPStatusError("mistral", resp.StatusCode(), message)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", nil, fmt.Errorf("empty response from Mistral API")
	}

	if result.Choices[0].FinishReason == "length" {
		reqCtx.LogWarning("Mistral response was truncated (finish_reason: length)")
	}

	usage := common.CalculateTokenCost(result.Usage.PromptTokens, result.Usage.CompletionTokens)
	return result.Choices[0].Message.Content, &usage, nil
}
