package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/meraki-adapter/internal/meraki"
	"github.com/netops-mcp/adapters/meraki-adapter/internal/tools"
	"github.com/netops-mcp/adapters/meraki-adapter/pkg/config"
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
		logger.Init("meraki-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [meraki-adapter]...")

	logg.Infow("upstream configured",
		"url", cfg.BaseURL,
		"api_key", redact.Preview(cfg.APIKey),
		"role", cfg.Role)

	// --- Upstream client ---
	client := meraki.NewClient(logger.L(), meraki.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	})

	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to authenticate with Meraki Dashboard", "error", err)
	}
	logg.Info("authenticated with Meraki Dashboard")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"meraki_dashboard": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"Meraki MCP Server",
		version,
		"Provides role-based access to the Cisco Meraki Dashboard API for organization, network, device, license and firmware operations.",
		logger.L(),
	)
	tools.Register(s, client, cfg.Role)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [meraki-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
