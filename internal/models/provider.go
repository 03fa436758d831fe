package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/voice-diary/internal/config"
)

// Constructor builds a model for one provider.
type Constructor func(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error)

var constructors = map[string]Constructor{
	config.ProviderOpenAI:     NewOpenAIModel,
	config.ProviderGrok:       NewGrokModel,
	config.ProviderOpenRouter: NewOpenRouterModel,
	config.ProviderGemini:     NewGeminiModel,
}

// NewModel creates the completion model selected by cfg.
func NewModel(ctx context.Context, cfg config.LLMConfig) (model.LLM, error) {
	newModel, ok := constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}

	clientCfg := &genai.ClientConfig{
		APIKey: cfg.APIKey,
	}
	if cfg.Provider == config.ProviderGemini {
		clientCfg.Backend = genai.BackendGeminiAPI
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		clientCfg.HTTPOptions.Timeout = &timeout
	}

	m, err := newModel(ctx, cfg.Model, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", cfg.Provider, err)
	}
	return m, nil
}
