package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/pkg/logger"
	"github.com/netops-mcp/adapters/pkg/redact"
	"github.com/netops-mcp/adapters/splunk-adapter/internal/splunk"
	"github.com/netops-mcp/adapters/splunk-adapter/internal/tools"
	"github.com/netops-mcp/adapters/splunk-adapter/pkg/config"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration (fail-fast on missing variables) ---
	cfg, err := config.Load()
	if err != nil {
		logger.Init("splunk-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [splunk-adapter]...")

	logg.Infow("upstream configured",
		"backend", cfg.BackendURL(),
		"api_key", redact.Preview(cfg.APIKey))

	// --- Upstream client ---
	client := splunk.NewClient(logger.L(), splunk.Options{
		BackendURL: cfg.BackendURL(),
		APIKey:     cfg.APIKey,
		VerifySSL:  cfg.VerifySSL,
	})

	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to reach Splunk MCP backend", "error", err)
	}
	logg.Info("connected to Splunk MCP backend")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"splunk_backend": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"Splunk MCP Server",
		version,
		"Provides access to Splunk for instance information, index management, SPL queries, metadata and knowledge objects.",
		logger.L(),
	)
	tools.Register(s, client)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [splunk-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
