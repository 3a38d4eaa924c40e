package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "1.0.0"
	Commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wiretype-mcp",
	Short: "Response type synthesis for captured HTTP traffic",
	Long: `wiretype-mcp tails an HTTP capture backend, groups traffic into
routes, and synthesizes TypeScript-style interface declarations from the
observed JSON response bodies.

Run "serve" to expose the synthesis tools over MCP stdio, or "gen" to
generate declarations from a newline-delimited JSON observation file.

Configuration is read from environment variables (WIRETYPE_BASE_URL,
TYPEGEN_ROUTE_WINDOW, LOG_LEVEL, ...); see internal/config for the
full list.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
