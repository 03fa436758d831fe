// Package config loads configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderOpenAI     = "openai"
	ProviderGrok       = "grok"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLMConfig describes the external completion capability.
type LLMConfig struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	Timeout         time.Duration
	MaxOutputTokens int
	Temperature     float64
}

// HasCredential reports whether the completion capability can be attempted at all.
func (c LLMConfig) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Config holds runtime settings.
type Config struct {
	LLM         LLMConfig
	Topics      []string
	DatabaseURL string
	LogLevel    slog.Level
}

// Load reads .env and env vars and applies defaults. A missing API key is not an
// error: it selects the local keyword path.
func Load() Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	switch provider {
	case ProviderOpenAI, ProviderGrok, ProviderOpenRouter, ProviderGemini:
	default:
		provider = ProviderOpenAI
	}

	cfg := Config{
		LLM: LLMConfig{
			Provider:        provider,
			Model:           os.Getenv("LLM_MODEL"),
			APIKey:          os.Getenv("LLM_API_KEY"),
			BaseURL:         os.Getenv("LLM_BASE_URL"),
			Timeout:         time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxOutputTokens: getEnvInt("LLM_MAX_TOKENS", 200),
			Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.3),
		},
		Topics:      splitList(os.Getenv("KEYWORD_TOPICS")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(providerKeyEnv(provider))
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel(provider)
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = 15 * time.Second
	}
	if cfg.LLM.MaxOutputTokens <= 0 {
		cfg.LLM.MaxOutputTokens = 200
	}

	return cfg
}

func providerKeyEnv(provider string) string {
	switch provider {
	case ProviderGrok:
		return "XAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderGemini:
		return "GOOGLE_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGrok:
		return "grok-4-fast"
	case ProviderOpenRouter:
		return "openai/gpt-4o-mini"
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}
