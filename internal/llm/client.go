// Package llm wraps the external text-generation collaborator behind a
// single-call interface. The Content Generator treats every failure from
// here (network, auth, rate limit) uniformly as retryable.
package llm

import (
	"context"
	"fmt"

	"sportiq/internal/config"
)

// Client is the text-generation collaborator: a single synchronous
// completion call. No conversation state is retained between calls.
type Client interface {
	// Complete sends one prompt and returns the raw text response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewClient builds a Client from config. Provider "mock" returns a client
// that fails every call; it exists so the server can start without an API
// key in development.
func NewClient(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "openai", "azure":
		return NewOpenAIClient(cfg), nil
	case "mock":
		return &MockClient{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
