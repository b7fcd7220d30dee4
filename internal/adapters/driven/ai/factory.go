// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/schemadiff/internal/adapters/driven/config/file"
	anthropicllm "github.com/custodia-labs/schemadiff/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/schemadiff/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/schemadiff/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/schemadiff/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of LLM service initialisation.
type InitResult struct {
	LLMService  driven.LLMService
	PromptStore driven.PromptStore // User-customisable prompt templates.
	Warnings    []string           // Non-fatal issues such as a missing key or failed ping.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Initialise builds the prompt store and the LLM service.
// Failures never abort: they are recorded as warnings. LLMService stays nil
// only when no credential is configured or the provider cannot be built; a
// failed connectivity check is a warning and the service is still returned.
// An empty promptDir uses the default prompt directory.
func Initialise(settings *domain.LLMSettings, promptDir string) *InitResult {
	result := &InitResult{}

	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("prompt store unavailable, using defaults: %v", err))
	} else {
		result.PromptStore = prompts
	}

	if settings == nil || !settings.IsConfigured() {
		result.Warnings = append(result.Warnings,
			"no LLM API key configured; impact summaries and test scenarios are skipped")
		return result
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%v: %v. Run 'schemadiff settings llm' to fix",
			domain.ErrLLMUnavailable, err))
		return result
	}
	if svc == nil {
		return result
	}

	// An unreachable model keeps the service: every record then carries an
	// error placeholder in the workbook instead of the workbook being skipped.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%v: service unreachable (%v); impact cells will hold error placeholders", domain.ErrLLMUnavailable, err))
	}
	result.LLMService = svc
	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'schemadiff settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'schemadiff settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by 'settings llm' to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return createGeminiLLM(settings)

	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createGeminiLLM creates a Gemini LLM service.
func createGeminiLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := geminillm.NewLLMService(context.Background(), geminillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}
