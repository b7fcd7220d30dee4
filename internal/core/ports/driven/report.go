package driven

import "github.com/custodia-labs/schemadiff/internal/core/domain"

// ReportWriter persists the impact analysis as a downloadable document.
type ReportWriter interface {
	// WriteImpactReport writes the change table and the assessments to path.
	WriteImpactReport(path string, report *domain.ComparisonReport, assessments []domain.ImpactAssessment) error
}
