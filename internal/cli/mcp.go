package cli

import (
	"github.com/spf13/cobra"

	"github.com/tuilad01/excelext/internal/mcp"
)

// serverVersion is reported to MCP clients.
var serverVersion = "dev"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (stdio)",
	Long: `Run excelext as a Model Context Protocol server using stdio transport.
Files are confined to --allowed-paths (or ` + mcp.AllowedPathsEnv + `
when the flag is not given), and to the working directory when neither is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		allowedPaths, _ := cmd.Flags().GetStringSlice("allowed-paths")
		mcp.InitAllowedPaths(allowedPaths)

		srv := mcp.New(serverVersion)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringSlice("allowed-paths", nil,
		"Directories to allow file access (comma-separated, e.g. --allowed-paths /tmp,/data)")
}
