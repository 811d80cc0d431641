package llm

import (
	"fmt"
	"strings"

	"github.com/clariview/clariview/internal/model"
)

// NewProvider creates a new LLM provider based on configuration. An
// empty provider name disables the language model entirely: claim
// judgment falls back to counting rules and claim derivation to the
// sentence heuristic.
func NewProvider(config model.LLMConfig) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
