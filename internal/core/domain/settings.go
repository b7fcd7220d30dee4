package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is Google's Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// ReportFormat selects how the change table is rendered.
type ReportFormat string

// Available report formats.
const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatYAML  ReportFormat = "yaml"
)

// IsValid returns true if the report format is recognised.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatTable, ReportFormatJSON, ReportFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ReportFormat) String() string {
	return string(f)
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ImpactSettings controls impact summary generation.
type ImpactSettings struct {
	// TimeoutSeconds bounds each call to the model.
	TimeoutSeconds int

	// MaxRetries is how many times a failed call is retried.
	MaxRetries int

	// RequestsPerMinute paces calls to the model.
	RequestsPerMinute int
}

// Timeout returns TimeoutSeconds as a duration.
func (s ImpactSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FlattenSettings controls schema flattening.
type FlattenSettings struct {
	// MaxDepth is the deepest element nesting that is expanded.
	MaxDepth int
}

// ReportSettings controls report rendering.
type ReportSettings struct {
	// Format is the default change table format.
	Format ReportFormat
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM     LLMSettings
	Impact  ImpactSettings
	Flatten FlattenSettings
	Report  ReportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM provider defaults to Gemini but stays unconfigured until an
// API key is supplied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
		},
		Impact: ImpactSettings{
			TimeoutSeconds:    60,
			MaxRetries:        2,
			RequestsPerMinute: 30,
		},
		Flatten: FlattenSettings{
			MaxDepth: 64,
		},
		Report: ReportSettings{
			Format: ReportFormatTable,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-1.5-pro-latest",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}

// AllReportFormats returns all available report formats.
func AllReportFormats() []ReportFormat {
	return []ReportFormat{
		ReportFormatTable,
		ReportFormatJSON,
		ReportFormatYAML,
	}
}
