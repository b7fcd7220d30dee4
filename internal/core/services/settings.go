package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMBaseURL        = "llm.base_url"
	KeyLLMAPIKey         = "llm.api_key"
	KeyImpactTimeout     = "impact.timeout_seconds"
	KeyImpactRetries     = "impact.max_retries"
	KeyImpactRatePerMin  = "impact.requests_per_minute"
	KeyFlattenMaxDepth   = "flatten.max_depth"
	KeyReportFormat      = "report.format"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(defaults.LLM.Provider)
	model := s.configStore.GetString(KeyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    model,
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Impact: domain.ImpactSettings{
			TimeoutSeconds:    s.getInt(KeyImpactTimeout, defaults.Impact.TimeoutSeconds),
			MaxRetries:        s.getInt(KeyImpactRetries, defaults.Impact.MaxRetries),
			RequestsPerMinute: s.getInt(KeyImpactRatePerMin, defaults.Impact.RequestsPerMinute),
		},
		Flatten: domain.FlattenSettings{
			MaxDepth: s.getInt(KeyFlattenMaxDepth, defaults.Flatten.MaxDepth),
		},
		Report: domain.ReportSettings{
			Format: s.getReportFormat(defaults.Report.Format),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(KeyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(KeyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(KeyImpactTimeout, settings.Impact.TimeoutSeconds); err != nil {
		return fmt.Errorf("save impact timeout: %w", err)
	}
	if err := s.configStore.Set(KeyImpactRetries, settings.Impact.MaxRetries); err != nil {
		return fmt.Errorf("save impact retries: %w", err)
	}
	if err := s.configStore.Set(KeyImpactRatePerMin, settings.Impact.RequestsPerMinute); err != nil {
		return fmt.Errorf("save impact rate: %w", err)
	}
	if err := s.configStore.Set(KeyFlattenMaxDepth, settings.Flatten.MaxDepth); err != nil {
		return fmt.Errorf("save flatten max depth: %w", err)
	}
	if err := s.configStore.Set(KeyReportFormat, settings.Report.Format.String()); err != nil {
		return fmt.Errorf("save report format: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	// Local providers need a base URL; cloud providers use their default endpoint
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Set updates a single setting. Values are validated against the key's type.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)

	case KeyReportFormat:
		if !domain.ReportFormat(value).IsValid() {
			return fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)

	case KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey:
		return s.configStore.Set(key, value)

	case KeyImpactTimeout, KeyImpactRetries, KeyImpactRatePerMin, KeyFlattenMaxDepth:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the config keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyLLMProvider, KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey,
		KeyImpactTimeout, KeyImpactRetries, KeyImpactRatePerMin,
		KeyFlattenMaxDepth, KeyReportFormat,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that current settings are usable.
// An unconfigured LLM is not an error; it only disables impact summaries.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}
	if settings.Flatten.MaxDepth <= 0 {
		return fmt.Errorf("flatten.max_depth must be positive, got %d", settings.Flatten.MaxDepth)
	}
	if settings.Impact.TimeoutSeconds <= 0 {
		return fmt.Errorf("impact.timeout_seconds must be positive, got %d", settings.Impact.TimeoutSeconds)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(KeyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getReportFormat(defaultVal domain.ReportFormat) domain.ReportFormat {
	val := s.configStore.GetString(KeyReportFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.ReportFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
