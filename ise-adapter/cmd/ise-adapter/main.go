package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/ise-adapter/internal/ise"
	"github.com/netops-mcp/adapters/ise-adapter/internal/tools"
	"github.com/netops-mcp/adapters/ise-adapter/pkg/config"
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
		logger.Init("ise-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [ise-adapter]...")

	// The endpoint registry is static; a broken entry is a build mistake
	// and should stop the process before any tool is registered.
	if err := ise.Validate(ise.Endpoints); err != nil {
		logg.Fatalw("endpoint registry invalid", "error", err)
	}

	logg.Infow("upstream configured",
		"host", cfg.Host,
		"username", cfg.Username,
		"password", redact.Preview(cfg.Password),
		"api_version", cfg.Version)

	// --- Upstream client ---
	client := ise.NewClient(logger.L(), ise.Options{
		Host:      cfg.Host,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Version:   cfg.Version,
		VerifySSL: cfg.VerifySSL,
	})

	// ERS has no login endpoint, so the readiness gate is a one-row listing.
	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to reach ISE ERS API", "error", err)
	}
	logg.Info("connected to ISE ERS API")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"ise_ers": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"Cisco ISE MCP Server",
		version,
		"Provides read-only access to Cisco ISE for network access control, identity management, policy inspection and session monitoring.",
		logger.L(),
	)
	tools.Register(s, client)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [ise-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
