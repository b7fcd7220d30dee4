package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedSchema indicates a schema document could not be parsed.
	// The comparison is aborted; no partial result is produced.
	ErrMalformedSchema = errors.New("malformed schema")

	// ErrCyclicSchema indicates a complex type (directly or indirectly)
	// contains an element of its own type.
	ErrCyclicSchema = errors.New("cyclic schema")

	// ErrSchemaTooDeep indicates element nesting exceeded the configured depth.
	ErrSchemaTooDeep = errors.New("schema nesting too deep")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Impact summaries and test scenarios are skipped; the diff is unaffected.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// CyclicSchemaError reports the type chain that re-entered itself.
type CyclicSchemaError struct {
	// Path is the element path at which the cycle was detected.
	Path string

	// Chain lists the complex type names being expanded, outermost first,
	// ending with the repeated name.
	Chain []string
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("cyclic schema at %s: %s", e.Path, strings.Join(e.Chain, " -> "))
}

// Is lets errors.Is match ErrCyclicSchema.
func (e *CyclicSchemaError) Is(target error) bool {
	return target == ErrCyclicSchema
}
