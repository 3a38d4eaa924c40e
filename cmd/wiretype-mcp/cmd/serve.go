package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usestring/wiretype-mcp/internal/cache"
	"github.com/usestring/wiretype-mcp/internal/config"
	"github.com/usestring/wiretype-mcp/internal/ingest"
	"github.com/usestring/wiretype-mcp/internal/logging"
	"github.com/usestring/wiretype-mcp/internal/mcp"
	"github.com/usestring/wiretype-mcp/internal/mcp/tools"
	"github.com/usestring/wiretype-mcp/internal/query"
	"github.com/usestring/wiretype-mcp/internal/routes"
	"github.com/usestring/wiretype-mcp/pkg/client"
	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wiretype tools over MCP stdio",
	Long: `Serve starts the MCP server on stdio and a background loop that
tails the capture backend for new entries. Logs go to stderr (or LOG_FILE)
since stdout carries the MCP protocol.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	cleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	captureClient := client.New(
		client.WithBaseURL(cfg.CaptureBaseURL),
		client.WithTimeout(cfg.HTTPClientTimeout),
	)

	bodyCache, err := cache.NewBodyCache(cfg.BodyCacheMaxItems)
	if err != nil {
		return fmt.Errorf("creating body cache: %w", err)
	}

	engine := typegen.NewEngine(cfg.EngineOptions())
	store := routes.NewStore(engine, cfg.ObservationCap)
	ingestor := ingest.New(store, bodyCache, cfg)
	refresher := routes.NewRefresher(captureClient, ingestor, cfg)

	server, err := mcp.NewServer(&tools.Deps{
		Client:    captureClient,
		Store:     store,
		Refresher: refresher,
		Query:     query.NewEngine(),
		Config:    cfg,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	refresher.Start(ctx)

	slog.Info("starting wiretype MCP server on stdio",
		slog.String("base_url", cfg.CaptureBaseURL),
	)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
