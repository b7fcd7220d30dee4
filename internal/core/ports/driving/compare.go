package driving

import (
	"context"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// CompareService compares two schema documents.
type CompareService interface {
	// CompareFiles parses, flattens and diffs the schemas at the given paths.
	CompareFiles(ctx context.Context, oldPath, newPath string) (*domain.ComparisonReport, error)

	// CompareBytes compares two in-memory schema documents.
	// The names label the documents in the report and in errors.
	CompareBytes(ctx context.Context, oldName string, oldXSD []byte, newName string, newXSD []byte) (*domain.ComparisonReport, error)
}
