package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/netbox-adapter/internal/netbox"
	"github.com/netops-mcp/adapters/netbox-adapter/internal/tools"
	"github.com/netops-mcp/adapters/netbox-adapter/pkg/config"
	"github.com/netops-mcp/adapters/pkg/logger"
	"github.com/netops-mcp/adapters/pkg/redact"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration (fail-fast on missing variables) ---
	cfg, err := config.Load()
	if err != nil {
		logger.Init("netbox-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [netbox-adapter]...")

	logg.Infow("upstream configured",
		"url", cfg.URL,
		"token", redact.Preview(cfg.Token))

	// --- Upstream client ---
	client := netbox.NewClient(logger.L(), netbox.Options{
		URL:       cfg.URL,
		Token:     cfg.Token,
		VerifySSL: cfg.VerifySSL,
	})

	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to authenticate with NetBox", "error", err)
	}
	logg.Info("authenticated with NetBox")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"netbox": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"NetBox MCP Server",
		version,
		"Provides access to NetBox for device inventory, sites, IP address management, prefixes and VLANs.",
		logger.L(),
	)
	tools.Register(s, client)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [netbox-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
