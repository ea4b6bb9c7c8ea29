package main

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"powerpages/internal/adapters/filesystem"
	mcpadapter "powerpages/internal/adapters/mcp"
	"powerpages/internal/adapters/sqlite"
	"powerpages/internal/application/processors"
	"powerpages/internal/config"
	"powerpages/internal/logging"
)

func main() {
	flags := pflag.NewFlagSet("powerpages-mcp", pflag.ExitOnError)
	configPath := flags.String("config", "", "config file")
	flags.String("sync-dir", "", "directory holding the page files")
	flags.String("db", "", "page database file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		logrus.Fatalf("powerpages-mcp: %v", err)
	}
	// Tool results are plain text.
	lipgloss.SetColorProfile(termenv.Ascii)

	log, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		logrus.Fatalf("powerpages-mcp: %v", err)
	}
	defer closer.Close()

	store, err := sqlite.Open(cfg.Database)
	if err != nil {
		log.Fatalf("powerpages-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"powerpages-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store, processors.DefaultRegistry())
	if cfg.SyncDirectory != "" {
		dir := filesystem.NewDirectory(cfg.SyncDirectory)
		mcpadapter.RegisterPreviewTools(mcpServer, store, dir, log.WithField("sync_dir", cfg.SyncDirectory))
	} else {
		log.Warn("no sync directory configured, preview tools disabled")
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Errorf("powerpages-mcp: %v", err)
		os.Exit(1)
	}
}
