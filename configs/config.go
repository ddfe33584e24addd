// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// AI provider selection: "gemini" or "mistral"
	AI_PROVIDER string

	// Gemini AI Configuration
	GEMINI_API_KEY string
	MODEL_NAME     string

	// Mistral AI Configuration
	MISTRAL_API_KEY    string
	MISTRAL_MODEL_NAME string
	MISTRAL_BASE_URL   string

	// Log the raw provider JSON for every analysis (debugging only)
	LOG_AI_RAW_RESPONSE bool

	// Token pricing (per 1M tokens in USD), used for cost logging only
	AI_INPUT_PRICE_PER_MILLION  float64
	AI_OUTPUT_PRICE_PER_MILLION float64
	USD_TO_IDR                  float64

	// Outbound analysis throttling
	ANALYSIS_RATE_LIMIT     int
	ANALYSIS_REFILL_SECONDS int

	// Server Configuration
	PORT            string
	ALLOWED_ORIGINS string

	// MongoDB Configuration (optional, empty URI disables it)
	MONGO_URI                 string
	MONGO_DB_NAME             string
	OPTIONS_CACHE_TTL_SECONDS int
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AI_PROVIDER = getEnv("AI_PROVIDER", "gemini")

	// API_KEY is the name the original web app used; GEMINI_API_KEY wins when both are set.
	// A missing key is not fatal: the provider call fails and surfaces as the analysis error.
	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))
	if GEMINI_API_KEY == "" && AI_PROVIDER == "gemini" {
		log.Println("⚠️  GEMINI_API_KEY is not set, AI analysis requests will fail")
	}
	MODEL_NAME = getEnv("MODEL_NAME", "gemini-2.5-flash")

	MISTRAL_API_KEY = getEnv("MISTRAL_API_KEY", "")
	MISTRAL_MODEL_NAME = getEnv("MISTRAL_MODEL_NAME", "mistral-small-latest")
	MISTRAL_BASE_URL = getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai")

	LOG_AI_RAW_RESPONSE = getEnvBool("LOG_AI_RAW_RESPONSE", false)

	// Gemini 2.5 Flash pricing by default
	AI_INPUT_PRICE_PER_MILLION = getEnvFloat("AI_INPUT_PRICE_PER_MILLION", 0.30)
	AI_OUTPUT_PRICE_PER_MILLION = getEnvFloat("AI_OUTPUT_PRICE_PER_MILLION", 2.50)
	USD_TO_IDR = getEnvFloat("USD_TO_IDR", 16000)

	ANALYSIS_RATE_LIMIT = getEnvInt("ANALYSIS_RATE_LIMIT", 10)
	ANALYSIS_REFILL_SECONDS = getEnvInt("ANALYSIS_REFILL_SECONDS", 6)

	PORT = getEnv("PORT", "8080")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	MONGO_URI = getEnv("MONGO_URI", "")
	MONGO_DB_NAME = getEnv("MONGO_DB_NAME", "hpp_pricing")
	OPTIONS_CACHE_TTL_SECONDS = getEnvInt("OPTIONS_CACHE_TTL_SECONDS", 300)

	log.Println("✓ Configuration loaded successfully")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
