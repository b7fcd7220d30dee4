package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// Differ classifies the differences between two flattened schemas.
type Differ struct{}

// NewDiffer creates a new differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Compare returns one record per path that was added, removed, retyped or
// newly marked, sorted by path.
//
// A type change takes precedence over an annotation change. Only a marker on
// the new side is reported: a marker disappearing is not a change record.
func (d *Differ) Compare(oldSchema, newSchema domain.FlattenedSchema) []domain.ChangeRecord {
	paths := make([]string, 0, len(oldSchema)+len(newSchema))
	for p := range oldSchema {
		paths = append(paths, p)
	}
	for p := range newSchema {
		if _, ok := oldSchema[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var changes []domain.ChangeRecord
	for _, path := range paths {
		before, inOld := oldSchema[path]
		after, inNew := newSchema[path]

		switch {
		case !inNew:
			changes = append(changes, domain.ChangeRecord{
				Kind:       domain.ChangeRemoved,
				Path:       path,
				OldType:    before.Type,
				Annotation: before.Annotation,
			})
		case !inOld:
			changes = append(changes, domain.ChangeRecord{
				Kind:       domain.ChangeAdded,
				Path:       path,
				NewType:    after.Type,
				Annotation: after.Annotation,
			})
		case before.Type != after.Type:
			changes = append(changes, domain.ChangeRecord{
				Kind:       domain.ChangeModified,
				Path:       path,
				OldType:    before.Type,
				NewType:    after.Type,
				Annotation: after.Annotation,
			})
		case !strings.EqualFold(before.Annotation, after.Annotation) && domain.IsAnnotationMarker(after.Annotation):
			changes = append(changes, domain.ChangeRecord{
				Kind:       domain.ChangeAnnotationChanged,
				Path:       path,
				OldType:    before.Type,
				NewType:    after.Type,
				Annotation: after.Annotation,
			})
		}
	}
	return changes
}
