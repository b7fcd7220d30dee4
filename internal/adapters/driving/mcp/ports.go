package mcp

import (
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Compare parses, flattens and diffs schema documents.
	Compare driving.CompareService

	// Impact generates impact summaries. Optional; assess_impact fails without it.
	Impact driving.ImpactService

	// Settings exposes the current configuration as a resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Compare == nil {
		return ErrMissingCompareService
	}
	return nil
}
