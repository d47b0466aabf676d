package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlannerClientInterface is a large language model that answers a prompt with a single JSON document.
type PlannerClientInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewPlannerClient Factory function to create either OpenAI or Gemini client based on config
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s api key is required", provider)
	}
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
