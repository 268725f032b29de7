package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/adapters/driving/mcp"
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

The server exposes a "search" tool, a "paginate" tool and the records as
sifter://records resources. By default it communicates over stdio using
JSON-RPC. Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  sifter mcp serve --records books.json

  # HTTP mode (for MCP Inspector, remote access)
  sifter mcp serve --port 8080`,
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
		Search:  searchService,
		Records: recordService,
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			ports.Marker = s.Highlight
		}
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	stop := startRefresher(cmd.Context())
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
