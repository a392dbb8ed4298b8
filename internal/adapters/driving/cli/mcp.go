package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prodsearch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/prodsearch/internal/logger"
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

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

The server exposes the search_products tool and the prodsearch://identity
resource. With the file storage backend, edits to the state file (for example
'prodsearch identity reset' from another shell) are picked up while serving.

Examples:
  # Stdio mode (default, for Claude Desktop)
  prodsearch mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  prodsearch mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "prodsearch": {
        "command": "/path/to/prodsearch",
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

	ports := &mcp.Ports{
		Search:         searchService,
		Identity:       identityService,
		IdentityLength: identityLength(),
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	startWatch(ctx)

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// startWatch follows external edits of the state file until ctx is done.
func startWatch(ctx context.Context) {
	if storeWatcher == nil {
		return
	}
	go func() {
		err := storeWatcher.Watch(ctx, func() {
			logger.Info("State file changed; reloaded")
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Watching state file: %v", err)
		}
	}()
}
