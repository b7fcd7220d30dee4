package driven

import (
	"io"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// SchemaParser reads an XSD document into the domain schema model.
// Malformed input must fail with an error wrapping domain.ErrMalformedSchema;
// no partial result is returned.
type SchemaParser interface {
	// Parse reads a schema from r. The source names the document in errors.
	Parse(r io.Reader, source string) (*domain.Schema, error)

	// ParseFile reads the schema stored at path.
	ParseFile(path string) (*domain.Schema, error)
}
