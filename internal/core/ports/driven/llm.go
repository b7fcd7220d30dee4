package driven

import "context"

// LLMService provides text generation for impact summaries.
// This is an optional service - when nil, the change table is still produced
// but impact summaries and test scenarios are skipped.
//
// Implementations include:
//   - Gemini (google.golang.org/genai)
//   - OpenAI
//   - Anthropic
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// SystemPrompt is sent as the system instruction when non-empty.
	SystemPrompt string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
