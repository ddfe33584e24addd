// factory.go - Pricing provider factory

package ai

import (
	"fmt"
	"log"

	"github.com/dixra/hpp_smart_pricing/configs"
)

// CreatePricingProvider creates the provider selected by AI_PROVIDER
func CreatePricingProvider() (PricingProvider, error) {
	switch configs.AI_PROVIDER {
	case "gemini":
		log.Printf("🔵 Creating Gemini pricing provider (model: %s)", configs.MODEL_NAME)
		return NewGeminiProvider(configs.GEMINI_API_KEY, configs.MODEL_NAME), nil

	case "mistral":
		log.Printf("🔷 Creating Mistral pricing provider (model: %s)", configs.MISTRAL_MODEL_NAME)
		return NewMistralProvider(configs.MISTRAL_API_KEY, configs.MISTRAL_MODEL_NAME, configs.MISTRAL_BASE_URL), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: gemini, mistral)", configs.AI_PROVIDER)
	}
}
