package llm

import "context"

// Message is a single chat turn sent to a completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options holds per-request tuning for a chat completion call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Option mutates request options.
type Option func(*Options)

// WithModel overrides the provider's default model for one call.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider is the contract every chat completion backend implements.
type Provider interface {
	// Chat sends the full message payload and returns the assistant completion.
	Chat(ctx context.Context, messages []Message, opts ...Option) (string, error)

	// Name returns the provider identifier, e.g. "groq" or "ollama".
	Name() string
}
