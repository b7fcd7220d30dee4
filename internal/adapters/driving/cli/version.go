package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/schemadiff/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the schemadiff and MCP server versions",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("schemadiff version %s\n", version)
		cmd.Printf("MCP server %s %s\n", mcp.ServerName, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
