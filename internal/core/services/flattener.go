package services

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// DefaultMaxDepth bounds element nesting when no limit is configured.
const DefaultMaxDepth = 64

// Flattener turns a schema document into a path-keyed mapping.
type Flattener struct {
	maxDepth int
}

// NewFlattener creates a flattener. A maxDepth of zero or less uses DefaultMaxDepth.
func NewFlattener(maxDepth int) *Flattener {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Flattener{maxDepth: maxDepth}
}

// Flatten walks the type graph rooted at the top-level Document element.
// A schema without that element yields an empty mapping and no error.
func (f *Flattener) Flatten(schema *domain.Schema) (domain.FlattenedSchema, error) {
	out := make(domain.FlattenedSchema)

	root, ok := schema.TopLevelElement(domain.RootElementName)
	if !ok {
		logger.Debug("No top-level %s element in %s", domain.RootElementName, schema.Source)
		return out, nil
	}

	rootPath := "/" + domain.RootElementName
	out[rootPath] = domain.ElementInfo{Type: root.Type}

	ct, ok := schema.ResolveComplexType(root.Type)
	if !ok {
		return out, nil
	}

	w := &typeWalker{schema: schema, maxDepth: f.maxDepth, out: out}
	if err := w.expand(ct, rootPath, 1, []string{ct.Name}); err != nil {
		return nil, err
	}

	logger.Debug("Flattened %s: %d paths", schema.Source, len(out))
	return out, nil
}

// typeWalker carries the state of one Flatten call.
type typeWalker struct {
	schema   *domain.Schema
	maxDepth int
	out      domain.FlattenedSchema
}

// expand records every named, typed element of ct under parent and descends
// into the complex types they reference. chain holds the names of the types
// currently being expanded; re-entering one of them is a cycle.
func (w *typeWalker) expand(ct *domain.ComplexType, parent string, depth int, chain []string) error {
	for _, el := range ct.Elements {
		if el.Name == "" || el.Type == "" {
			continue
		}

		path := parent + "/" + el.Name
		w.out[path] = domain.ElementInfo{Type: el.Type, Annotation: el.Marker()}

		child, ok := w.schema.ResolveComplexType(el.Type)
		if !ok {
			continue
		}

		if slices.Contains(chain, child.Name) {
			return &domain.CyclicSchemaError{
				Path:  path,
				Chain: append(slices.Clone(chain), child.Name),
			}
		}
		if depth+1 > w.maxDepth {
			return fmt.Errorf("%w: %s exceeds %d levels", domain.ErrSchemaTooDeep, path, w.maxDepth)
		}

		if err := w.expand(child, path, depth+1, append(chain, child.Name)); err != nil {
			return err
		}
	}
	return nil
}
