package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// CompareInput is the input schema for the compare_schemas tool.
type CompareInput struct {
	OldXSD  string `json:"old_xsd" jsonschema:"full text of the old XSD document"`
	NewXSD  string `json:"new_xsd" jsonschema:"full text of the new XSD document"`
	OldName string `json:"old_name,omitempty" jsonschema:"label for the old document (default old.xsd)"`
	NewName string `json:"new_name,omitempty" jsonschema:"label for the new document (default new.xsd)"`
}

// CompareOutput is the output schema for the compare_schemas tool.
type CompareOutput struct {
	RunID       string                `json:"run_id"`
	OldElements int                   `json:"old_elements"`
	NewElements int                   `json:"new_elements"`
	Count       int                   `json:"count"`
	Counts      map[string]int        `json:"counts"`
	Changes     []domain.ChangeRecord `json:"changes"`
}

// ImpactOutput is the output schema for the assess_impact tool.
type ImpactOutput struct {
	RunID       string                    `json:"run_id"`
	Assessments []domain.ImpactAssessment `json:"assessments"`
	Failed      int                       `json:"failed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_schemas",
		Description: "Compare two XSD documents and list added, removed, modified and newly annotated element paths",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assess_impact",
		Description: "Compare two XSD documents and generate an impact summary and test scenario per change",
	}, s.handleAssessImpact)
}

// handleCompare handles the compare_schemas tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	report, err := s.compare(ctx, input)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	output := CompareOutput{
		RunID:       report.RunID,
		OldElements: report.OldElements,
		NewElements: report.NewElements,
		Count:       len(report.Changes),
		Counts:      make(map[string]int),
		Changes:     report.Changes,
	}
	if output.Changes == nil {
		output.Changes = []domain.ChangeRecord{}
	}
	for kind, n := range report.Counts() {
		output.Counts[kind.String()] = n
	}

	return nil, output, nil
}

// handleAssessImpact handles the assess_impact tool invocation.
func (s *Server) handleAssessImpact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, ImpactOutput, error) {
	if s.ports.Impact == nil {
		return nil, ImpactOutput{}, ErrImpactUnavailable
	}

	report, err := s.compare(ctx, input)
	if err != nil {
		return nil, ImpactOutput{}, err
	}

	assessments, err := s.ports.Impact.Assess(ctx, report.Changes)
	if err != nil {
		return nil, ImpactOutput{}, fmt.Errorf("assessing impact: %w", err)
	}

	output := ImpactOutput{
		RunID:       report.RunID,
		Assessments: assessments,
	}
	if output.Assessments == nil {
		output.Assessments = []domain.ImpactAssessment{}
	}
	for _, a := range assessments {
		if a.Failed() {
			output.Failed++
		}
	}

	return nil, output, nil
}

func (s *Server) compare(ctx context.Context, input CompareInput) (*domain.ComparisonReport, error) {
	if input.OldXSD == "" || input.NewXSD == "" {
		return nil, fmt.Errorf("%w: old_xsd and new_xsd are required", domain.ErrInvalidInput)
	}
	oldName := input.OldName
	if oldName == "" {
		oldName = "old.xsd"
	}
	newName := input.NewName
	if newName == "" {
		newName = "new.xsd"
	}

	report, err := s.ports.Compare.CompareBytes(ctx, oldName, []byte(input.OldXSD), newName, []byte(input.NewXSD))
	if err != nil {
		return nil, fmt.Errorf("comparing schemas: %w", err)
	}
	return report, nil
}
