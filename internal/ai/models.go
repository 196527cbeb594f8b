package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Temperature is the sampling temperature used for every advisor call.
const Temperature = 0.7

// Options selects and tunes a provider.
type Options struct {
	Provider    string // "gemini" or "openai"
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string
	OpenAIBase  string
	Timeout     time.Duration
}

// Provider is an LLMProvider holding client resources.
type Provider interface {
	LLMProvider
	Close()
}

// NewProvider builds the provider named in opts.
func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "openai":
		return NewOpenAIProvider(opts.OpenAIKey, opts.OpenAIBase, opts.OpenAIModel, opts.Timeout)
	case "gemini":
		return NewGeminiProvider(ctx, opts.GeminiKey, opts.GeminiModel, opts.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
