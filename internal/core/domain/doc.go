// Package domain defines the core business entities for schemadiff.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Schema: The parsed view of one XSD document
//   - FlattenedSchema: Element paths mapped to their declared type and marker
//   - ChangeRecord: One difference between two flattened schemas
//   - ImpactAssessment: Model-generated narrative for a change record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
