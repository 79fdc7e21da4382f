package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Gemini (primary AI provider)
	GeminiAPIKey  string
	GeminiModelID string

	// aiXplain (secondary AI provider)
	AixplainAPIKey            string
	AixplainAgentModelID      string
	AixplainSummarizerModelID string
	AixplainBaseURL           string

	// Language appended to every secondary-provider prompt
	ResponseLanguage string

	// Risk-prediction backend
	PredictBaseURL         string
	PredictFallbackBaseURL string
	PredictTimeout         time.Duration

	DatabaseURL string

	DisclaimerEnabled bool
	DisclaimerLevel   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-1.5-flash"),

		AixplainAPIKey:            getEnv("AIXPLAIN_API_KEY", ""),
		AixplainAgentModelID:      getEnv("AIXPLAIN_AGENT_MODEL_ID", ""),
		AixplainSummarizerModelID: getEnv("AIXPLAIN_SUMMARIZER_MODEL_ID", ""),
		AixplainBaseURL:           getEnv("AIXPLAIN_BASE_URL", "https://models.aixplain.com/api/v1"),

		ResponseLanguage: getEnv("RESPONSE_LANGUAGE", "English"),

		PredictBaseURL:         getEnv("PREDICT_BASE_URL", ""),
		PredictFallbackBaseURL: getEnv("PREDICT_FALLBACK_BASE_URL", ""),
		PredictTimeout:         getEnvAsDuration("PREDICT_TIMEOUT", 10*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		DisclaimerEnabled: getEnvAsBool("DISCLAIMER_ENABLED", true),
		DisclaimerLevel:   getEnv("DISCLAIMER_LEVEL", "medium"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
