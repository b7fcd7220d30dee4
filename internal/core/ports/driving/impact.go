package driving

import (
	"context"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// ImpactService generates impact summaries and test scenarios for changes.
type ImpactService interface {
	// Assess returns one assessment per change record, in the same order.
	// A failure for one record yields a placeholder for that record only.
	// Returns domain.ErrLLMUnavailable when no model is configured.
	Assess(ctx context.Context, changes []domain.ChangeRecord) ([]domain.ImpactAssessment, error)
}
