package models

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func NewOpenRouterModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	m, err := newOpenAICompatible(modelName, cfg, "openrouter-go", "https://openrouter.ai/api/v1")
	if err != nil {
		return nil, err
	}
	return m, nil
}
