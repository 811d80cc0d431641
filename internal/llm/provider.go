package llm

import (
	"context"
)

// Provider is the language-model collaborator: one free-form completion
// per call. Callers own their prompt contracts and reply parsing; the
// provider only moves text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the model's raw reply text
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// System frames the task (optional)
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the provider's configured model (optional)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling; 0 means use the low factual default
	Temperature float32
}
