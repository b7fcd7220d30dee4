package domain

import (
	"time"
)

// ChangeKind classifies a difference between two flattened schemas.
type ChangeKind string

// Change kinds.
const (
	// ChangeAdded marks a path present only in the new schema.
	ChangeAdded ChangeKind = "added"

	// ChangeRemoved marks a path present only in the old schema.
	ChangeRemoved ChangeKind = "removed"

	// ChangeModified marks a path whose declared type changed.
	ChangeModified ChangeKind = "modified"

	// ChangeAnnotationChanged marks a path that gained the annotation marker.
	ChangeAnnotationChanged ChangeKind = "annotation_changed"
)

// IsValid returns true if the change kind is recognised.
func (k ChangeKind) IsValid() bool {
	switch k {
	case ChangeAdded, ChangeRemoved, ChangeModified, ChangeAnnotationChanged:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ChangeKind) String() string {
	return string(k)
}

// Label returns the name shown in reports.
func (k ChangeKind) Label() string {
	switch k {
	case ChangeAdded:
		return "Added"
	case ChangeRemoved:
		return "Removed"
	case ChangeModified:
		return "Modified"
	case ChangeAnnotationChanged:
		return "Annotation Changed"
	default:
		return "Unknown"
	}
}

// AllChangeKinds returns every change kind in report order.
func AllChangeKinds() []ChangeKind {
	return []ChangeKind{
		ChangeAdded,
		ChangeRemoved,
		ChangeModified,
		ChangeAnnotationChanged,
	}
}

// ChangeRecord is one detected difference between two flattened schemas.
type ChangeRecord struct {
	Kind       ChangeKind `json:"change_type" yaml:"change_type"`
	Path       string     `json:"element_path" yaml:"element_path"`
	OldType    string     `json:"old_type,omitempty" yaml:"old_type,omitempty"`
	NewType    string     `json:"new_type,omitempty" yaml:"new_type,omitempty"`
	Annotation string     `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// ComparisonReport is the result of comparing two schema documents.
type ComparisonReport struct {
	// RunID uniquely identifies this comparison.
	RunID string `json:"run_id" yaml:"run_id"`

	// OldSource and NewSource name the compared documents.
	OldSource string `json:"old_source" yaml:"old_source"`
	NewSource string `json:"new_source" yaml:"new_source"`

	// GeneratedAt is when the comparison ran.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// OldElements and NewElements are the flattened path counts.
	OldElements int `json:"old_elements" yaml:"old_elements"`
	NewElements int `json:"new_elements" yaml:"new_elements"`

	// Changes is sorted by element path.
	Changes []ChangeRecord `json:"changes" yaml:"changes"`
}

// Counts returns the number of changes of each kind.
func (r *ComparisonReport) Counts() map[ChangeKind]int {
	counts := make(map[ChangeKind]int, len(AllChangeKinds()))
	if r == nil {
		return counts
	}
	for i := range r.Changes {
		counts[r.Changes[i].Kind]++
	}
	return counts
}

// HasChanges returns true if at least one difference was found.
func (r *ComparisonReport) HasChanges() bool {
	return r != nil && len(r.Changes) > 0
}

// ImpactAssessment pairs a change record with model-generated narrative.
type ImpactAssessment struct {
	Change ChangeRecord `json:"change" yaml:"change"`

	// ImpactSummary is a paragraph describing the impact of the change.
	ImpactSummary string `json:"impact_summary" yaml:"impact_summary"`

	// TestScenario describes how to validate the change.
	TestScenario string `json:"test_scenario" yaml:"test_scenario"`

	// Err holds the failure text when generation failed for this record.
	// ImpactSummary and TestScenario then carry a placeholder.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed returns true if generation failed for this record.
func (a ImpactAssessment) Failed() bool {
	return a.Err != ""
}
