package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codescope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Serve the analysis core as MCP tools on stdin/stdout so that editors and
agents can query impact, staged changes and context without shelling out.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadProject()
	if err != nil {
		return err
	}

	srv, err := mcp.NewServer(cfg, root, Version)
	if err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}

	return srv.ServeStdio()
}
