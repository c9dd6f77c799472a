package factory

import (
	"fmt"

	"kurazhelp-be/pkg/llm"
	"kurazhelp-be/pkg/llm/groq"
	"kurazhelp-be/pkg/llm/ollama"
)

// Config selects and parameterizes a chat completion provider.
type Config struct {
	Provider  string // "groq" or "ollama"
	Model     string
	GroqKey   string
	OllamaURL string
}

// NewProvider builds the configured provider. An unknown provider name is a
// startup error, not a silent fallback.
func NewProvider(cfg Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "groq":
		return groq.New(cfg.GroqKey, cfg.Model), nil
	case "ollama":
		return ollama.New(cfg.OllamaURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
