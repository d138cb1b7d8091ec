package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/iosxe-adapter/internal/device"
	"github.com/netops-mcp/adapters/iosxe-adapter/internal/tools"
	"github.com/netops-mcp/adapters/iosxe-adapter/pkg/config"
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
		logger.Init("iosxe-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [iosxe-adapter]...")

	logg.Infow("device credentials configured",
		"username", cfg.Username,
		"password", redact.Preview(cfg.Password),
		"ssh_port", cfg.SSHPort)

	// --- SSH runner ---
	// No target device is known until a tool call arrives, so there is no
	// startup connectivity gate; the health probe reports process liveness.
	runner := device.NewRunner(logger.L(), device.Options{
		Username: cfg.Username,
		Password: cfg.Password,
		Port:     cfg.SSHPort,
		Timeout:  cfg.Timeout,
	})

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"IOS XE MCP Server",
		version,
		"Executes show and configuration commands on Cisco IOS XE devices over SSH. Credentials come from the server environment; tools accept only hosts and commands.",
		logger.L(),
	)
	tools.Register(s, runner)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [iosxe-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
