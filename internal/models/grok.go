package models

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// NewGrokModel creates a new Grok model instance
//
// It uses the provided configuration to initialize the underlying
// OpenAI-compatible client against the x.ai endpoint. The modelName specifies
// which Grok model to target (e.g., "grok-4-fast").
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	m, err := newOpenAICompatible(modelName, cfg, "grok-go", "https://api.x.ai/v1")
	if err != nil {
		return nil, err
	}
	return m, nil
}
