package ai

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_provider.go -package=mocks roadtrip/internal/ai LLMProvider

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations must request structured JSON output and return the raw text.
type LLMProvider interface {
	// GenerateJSON sends a system instruction and a user message and returns the
	// model's JSON reply. An empty string means the model produced nothing.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
}
