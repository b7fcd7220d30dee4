package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/schemadiff/internal/adapters/driving/mcp"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the compare_schemas and assess_impact tools, which take
the old and new XSD documents as text.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead, for the MCP Inspector or remote access.

Examples:
  # Stdio mode (default, for desktop assistants)
  schemadiff mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  schemadiff mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "schemadiff": {
        "command": "/path/to/schemadiff",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	ports := &mcp.Ports{
		Compare:  compareService,
		Settings: settingsService,
	}

	impact, closeFn := mcpImpactService()
	if closeFn != nil {
		defer closeFn()
	}
	ports.Impact = impact

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// mcpImpactService builds the impact service from stored settings and
// the environment. Stdout is the transport in stdio mode, so warnings
// are not printed.
func mcpImpactService() (driving.ImpactService, func()) {
	if impactFactory == nil {
		return nil, nil
	}
	settings, err := loadSettings()
	if err != nil {
		return nil, nil
	}
	svc, _, closeFn := impactFactory(resolveLLMSettings(settings.LLM, ""), settings.Impact)
	return svc, closeFn
}
