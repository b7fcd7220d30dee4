// Package mcp provides an MCP (Model Context Protocol) server adapter for schemadiff.
// It lets AI assistants compare schema documents and request impact assessments.
package mcp

import "errors"

// ErrMissingCompareService is returned when the compare service is not provided.
var ErrMissingCompareService = errors.New("mcp: compare service is required")

// ErrImpactUnavailable is returned by assess_impact when no impact service is wired.
var ErrImpactUnavailable = errors.New("mcp: impact assessment is not configured")
