package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the "answer" tool and
the replybot://labels and replybot://corpus/stats resources.

By default the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  replybot mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  replybot mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "replybot": {
        "command": "/path/to/replybot",
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

	chat, err := trainChat(cmd.Context())
	if err != nil {
		return err
	}
	corpus, err := newCorpusService()
	if err != nil {
		return err
	}
	return serveMCP(cmd.Context(), &mcp.Ports{Chat: chat, Corpus: corpus}, port)
}

// serveMCP serves ports over HTTP when port is positive, stdio otherwise.
func serveMCP(ctx context.Context, ports *mcp.Ports, port int) error {
	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		return server.RunHTTP(ctx, fmt.Sprintf(":%d", port))
	}
	return server.Run(ctx)
}
