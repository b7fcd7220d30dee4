package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for schemadiff resources.
	uriScheme = "schemadiff://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "change-kinds",
		Name:        "change-kinds",
		Description: "The kinds of change reported by compare_schemas",
		MIMEType:    "application/json",
	}, s.handleChangeKindsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current schemadiff settings (API keys omitted)",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleChangeKindsResource describes every change kind.
func (s *Server) handleChangeKindsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type kindInfo struct {
		Kind        string `json:"kind"`
		Label       string `json:"label"`
		Description string `json:"description"`
	}

	descriptions := map[domain.ChangeKind]string{
		domain.ChangeAdded:             "path present only in the new schema",
		domain.ChangeRemoved:           "path present only in the old schema",
		domain.ChangeModified:          "declared type differs; takes precedence over annotation changes",
		domain.ChangeAnnotationChanged: "path gained the " + domain.AnnotationMarker + " marker",
	}

	kinds := domain.AllChangeKinds()
	infos := make([]kindInfo, len(kinds))
	for i, k := range kinds {
		infos[i] = kindInfo{Kind: k.String(), Label: k.Label(), Description: descriptions[k]}
	}

	return jsonResult(req.Params.URI, infos, "change kinds")
}

// handleSettingsResource returns the active settings without secrets.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	type settingsInfo struct {
		Provider          string `json:"llm_provider"`
		Model             string `json:"llm_model"`
		LLMConfigured     bool   `json:"llm_configured"`
		TimeoutSeconds    int    `json:"impact_timeout_seconds"`
		MaxRetries        int    `json:"impact_max_retries"`
		RequestsPerMinute int    `json:"impact_requests_per_minute"`
		MaxDepth          int    `json:"flatten_max_depth"`
		Format            string `json:"report_format"`
	}

	info := settingsInfo{
		Provider:          settings.LLM.Provider.String(),
		Model:             settings.LLM.Model,
		LLMConfigured:     settings.LLM.IsConfigured(),
		TimeoutSeconds:    settings.Impact.TimeoutSeconds,
		MaxRetries:        settings.Impact.MaxRetries,
		RequestsPerMinute: settings.Impact.RequestsPerMinute,
		MaxDepth:          settings.Flatten.MaxDepth,
		Format:            settings.Report.Format.String(),
	}

	return jsonResult(req.Params.URI, info, "settings")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
