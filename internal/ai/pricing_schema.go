// pricing_schema.go - The response contract of a pricing analysis.
// The schema sent to the provider is also the one the answer is validated against.

package ai

import (
	"encoding/json"
	"fmt"

	"github.com/dixra/hpp_smart_pricing/internal/pricing"
	"github.com/google/generative-ai-go/genai"
)

const (
	minStrategySuggestions = 1
	maxStrategySuggestions = 3
)

// PricingResponseSchema creates the JSON schema for the pricing recommendation
func PricingResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"price_range": {
				Type:        genai.TypeObject,
				Description: "Rentang harga pasar yang wajar untuk produk ini",
				Properties: map[string]*genai.Schema{
					"minimum": {Type: genai.TypeNumber, Description: "Harga terendah di pasar (Rupiah)"},
					"maximum": {Type: genai.TypeNumber, Description: "Harga tertinggi di pasar (Rupiah)"},
				},
				Required: []string{"minimum", "maximum"},
			},
			"recommended_price": {
				Type:        genai.TypeNumber,
				Description: "Satu angka harga jual per unit yang direkomendasikan (Rupiah)",
			},
			"estimated_margin_percent": {
				Type:        genai.TypeNumber,
				Description: "Persentase margin jika menjual di harga rekomendasi",
			},
			"short_analysis": {
				Type:        genai.TypeString,
				Description: "Alasan di balik harga rekomendasi, 2-3 kalimat",
			},
			"warning": {
				Type:        genai.TypeString,
				Description: "Peringatan bila margin terlalu tipis atau harga tidak wajar. String kosong bila tidak ada.",
			},
			"strategy_suggestions": {
				Type:        genai.TypeArray,
				Description: "2-3 strategi singkat (bundling, promo, paket, dll)",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{
			"price_range",
			"recommended_price",
			"estimated_margin_percent",
			"short_analysis",
			"warning",
			"strategy_suggestions",
		},
	}
}

// ParsePricingResponse turns the provider's text into AIResponseData. The text must be
// a JSON object that satisfies PricingResponseSchema.
func ParsePricingResponse(text string) (*pricing.AIResponseData, error) {
	cleaned := fixJSONEscaping(extractJSONObject(text))
	if cleaned == "" {
		return nil, fmt.Errorf("response contains no JSON object")
	}

	var generic interface{}
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validateAgainstSchema(PricingResponseSchema(), generic, "$"); err != nil {
		return nil, err
	}

	var result pricing.AIResponseData
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to decode pricing response: %w", err)
	}

	if len(result.StrategySuggestions) < minStrategySuggestions {
		return nil, fmt.Errorf("$.strategy_suggestions: expected at least %d item(s)", minStrategySuggestions)
	}
	if len(result.StrategySuggestions) > maxStrategySuggestions {
		result.StrategySuggestions = result.StrategySuggestions[:maxStrategySuggestions]
	}

	return &result, nil
}

// validateAgainstSchema checks types and required properties recursively
func validateAgainstSchema(schema *genai.Schema, value interface{}, path string) error {
	if value == nil {
		return fmt.Errorf("%s: value is null", path)
	}

	switch schema.Type {
	case genai.TypeObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}
		for _, key := range schema.Required {
			if _, exists := obj[key]; !exists {
				return fmt.Errorf("%s.%s: required field missing", path, key)
			}
		}
		for key, prop := range schema.Properties {
			v, exists := obj[key]
			if !exists {
				continue
			}
			if err := validateAgainstSchema(prop, v, path+"."+key); err != nil {
				return err
			}
		}

	case genai.TypeArray:
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}
		if schema.Items != nil {
			for i, item := range items {
				if err := validateAgainstSchema(schema.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
		}

	case genai.TypeNumber, genai.TypeInteger:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("%s: expected number", path)
		}

	case genai.TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s: expected string", path)
		}

	case genai.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: expected boolean", path)
		}
	}

	return nil
}

// schemaToJSONSchema converts a genai schema into a plain JSON Schema document
// for providers that take JSON Schema directly.
func schemaToJSONSchema(schema *genai.Schema) map[string]interface{} {
	out := map[string]interface{}{}

	switch schema.Type {
	case genai.TypeObject:
		out["type"] = "object"
		props := map[string]interface{}{}
		for key, prop := range schema.Properties {
			props[key] = schemaToJSONSchema(prop)
		}
		out["properties"] = props
		if len(schema.Required) > 0 {
			out["required"] = append([]string(nil), schema.Required...)
		}
		out["additionalProperties"] = false
	case genai.TypeArray:
		out["type"] = "array"
		if schema.Items != nil {
			out["items"] = schemaToJSONSchema(schema.Items)
		}
	case genai.TypeNumber:
		out["type"] = "number"
	case genai.TypeInteger:
		out["type"] = "integer"
	case genai.TypeString:
		out["type"] = "string"
	case genai.TypeBoolean:
		out["type"] = "boolean"
	}

	if schema.Description != "" {
		out["description"] = schema.Description
	}
	return out
}
