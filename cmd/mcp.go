package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Run a Model Context Protocol server exposing Tactyo data as
read-only tools over stdio. Point an MCP-capable agent at
'tactyo mcp' to let it query projects, boards, sprints, the
hierarchy, and change requests.

The server reuses the CLI's login session and active project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		return mcp.NewServer(client).ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
