package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Ensure ImpactService implements the interface.
var _ driving.ImpactService = (*ImpactService)(nil)

// notAvailable stands in for empty fields in prompts.
const notAvailable = "N/A"

// defaultImpactPrompt is the fallback prompt when no PromptStore is configured.
const defaultImpactPrompt = `Change Type: %s
Element Path: %s
Old Type: %s
New Type: %s
Annotation: %s

Based on the above information, provide a detailed impact summary in a paragraph format. Additionally, generate a test scenario for validating the changes:`

// defaultImpactSystemPrompt is the fallback system instruction.
const defaultImpactSystemPrompt = "Based on the above information, provide a detailed impact summary " +
	"in a paragraph format. Additionally, generate a test scenario for validating the changes."

// errEmptyResponse is returned when the model answers with blank text.
var errEmptyResponse = errors.New("empty response from model")

// ImpactOptions configures model calls made by ImpactService.
type ImpactOptions struct {
	// Timeout bounds a single model call. Zero means no per-call timeout.
	Timeout time.Duration

	// MaxRetries is how many times a failed call is retried.
	MaxRetries int

	// RequestsPerMinute paces model calls. Zero or less disables pacing.
	RequestsPerMinute int
}

// ImpactOptionsFromSettings converts persisted settings to options.
func ImpactOptionsFromSettings(s domain.ImpactSettings) ImpactOptions {
	return ImpactOptions{
		Timeout:           s.Timeout(),
		MaxRetries:        s.MaxRetries,
		RequestsPerMinute: s.RequestsPerMinute,
	}
}

// ImpactService asks a language model for an impact summary and a test
// scenario for each change record.
type ImpactService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    ImpactOptions
	limiter *rate.Limiter
}

// NewImpactService creates an impact service around an explicit model handle.
// llm may be nil, in which case Assess reports domain.ErrLLMUnavailable.
// prompts may be nil, in which case the embedded prompts are used.
func NewImpactService(llm driven.LLMService, prompts driven.PromptStore, opts ImpactOptions) *ImpactService {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}

	return &ImpactService{
		llm:     llm,
		prompts: prompts,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Assess generates an assessment for every change record, in order.
// A record whose model call fails gets placeholder text and processing
// continues. Cancelling ctx stops the loop and returns what was produced.
func (s *ImpactService) Assess(ctx context.Context, changes []domain.ChangeRecord) ([]domain.ImpactAssessment, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Impact Assessment")
	logger.Debug("Model: %s, records: %d", s.llm.ModelName(), len(changes))

	template := s.loadPrompt(driven.PromptImpactAssessment, defaultImpactPrompt)
	system := s.loadPrompt(driven.PromptImpactSystem, defaultImpactSystemPrompt)

	assessments := make([]domain.ImpactAssessment, 0, len(changes))
	for i := range changes {
		change := changes[i]
		prompt := BuildImpactPrompt(template, change)

		text, err := s.generate(ctx, prompt, system)
		if err != nil && ctx.Err() != nil {
			return assessments, ctx.Err()
		}

		assessment := domain.ImpactAssessment{Change: change}
		if err != nil {
			logger.Warn("Impact generation failed for %s: %v", change.Path, err)
			placeholder := fmt.Sprintf("[unavailable: %v]", err)
			assessment.ImpactSummary = placeholder
			assessment.TestScenario = placeholder
			assessment.Err = err.Error()
		} else {
			assessment.ImpactSummary = text
			assessment.TestScenario = text
		}

		logger.Debug("Assessed %d/%d: %s", i+1, len(changes), change.Path)
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}

// generate calls the model, retrying failed or empty answers.
func (s *ImpactService) generate(ctx context.Context, prompt, system string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		text, err := s.generateOnce(ctx, prompt, system)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		lastErr = err
		if attempt < s.opts.MaxRetries {
			logger.Debug("Attempt %d failed, retrying: %v", attempt+1, err)
		}
	}
	return "", lastErr
}

func (s *ImpactService) generateOnce(ctx context.Context, prompt, system string) (string, error) {
	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	text, err := s.llm.Generate(callCtx, prompt, driven.GenerateOptions{
		SystemPrompt: system,
		Temperature:  0.3,
	})
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *ImpactService) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

// BuildImpactPrompt fills the impact template for one change record.
// Empty types and annotations are rendered as N/A.
func BuildImpactPrompt(template string, change domain.ChangeRecord) string {
	return fmt.Sprintf(template,
		change.Kind.Label(),
		change.Path,
		orNotAvailable(change.OldType),
		orNotAvailable(change.NewType),
		orNotAvailable(change.Annotation),
	)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
