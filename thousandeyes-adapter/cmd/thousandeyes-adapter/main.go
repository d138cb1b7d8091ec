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
	"github.com/netops-mcp/adapters/thousandeyes-adapter/internal/te"
	"github.com/netops-mcp/adapters/thousandeyes-adapter/internal/tools"
	"github.com/netops-mcp/adapters/thousandeyes-adapter/pkg/config"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration (fail-fast on missing variables) ---
	cfg, err := config.Load()
	if err != nil {
		logger.Init("thousandeyes-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [thousandeyes-adapter]...")

	logg.Infow("upstream configured",
		"url", cfg.BaseURL,
		"token", redact.Preview(cfg.Token))

	// --- Upstream client ---
	client := te.NewClient(logger.L(), te.Options{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
	})

	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to authenticate with ThousandEyes", "error", err)
	}
	logg.Info("authenticated with ThousandEyes")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"thousandeyes": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"ThousandEyes MCP Server",
		version,
		"Provides access to Cisco ThousandEyes for test results, path visualization, agents, dashboards, alerts and account data.",
		logger.L(),
	)
	tools.Register(s, client)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [thousandeyes-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
