package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netops-mcp/adapters/catc-adapter/internal/catc"
	"github.com/netops-mcp/adapters/catc-adapter/internal/tools"
	"github.com/netops-mcp/adapters/catc-adapter/pkg/config"
	"github.com/netops-mcp/adapters/internal/admin"
	"github.com/netops-mcp/adapters/internal/toolserver"
	"github.com/netops-mcp/adapters/pkg/logger"
	"github.com/netops-mcp/adapters/pkg/redact"
	"github.com/netops-mcp/adapters/pkg/secrets"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration (fail-fast on missing variables) ---
	cfg, err := config.Load()
	if err != nil {
		logger.Init("catc-adapter", "dev", "info")
		logger.S().Fatalw("configuration invalid", "error", err)
	}

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [catc-adapter]...")

	// --- Resolve credentials from AWS Secrets Manager if configured ---
	if cfg.SecretID != "" {
		provider, err := secrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to init secrets provider", "error", err)
		}
		cache := secrets.NewCache[map[string]string](30 * time.Minute)
		bundle, err := secrets.Lookup(ctx, provider, cache, cfg.SecretID)
		if err != nil {
			logg.Fatalw("failed to resolve credential secret", "secret_id", cfg.SecretID, "error", err)
		}
		cfg.Username = bundle["username"]
		cfg.Password = bundle["password"]
	}

	logg.Infow("upstream configured",
		"url", cfg.BaseURL,
		"username", cfg.Username,
		"password", redact.Preview(cfg.Password))

	// --- Upstream client ---
	client := catc.NewClient(logger.L(), catc.Options{
		BaseURL:   cfg.BaseURL,
		Username:  cfg.Username,
		Password:  cfg.Password,
		VerifySSL: cfg.VerifySSL,
	})

	// Verify credentials before serving tools, like a readiness gate.
	if err := client.Verify(ctx); err != nil {
		logg.Fatalw("failed to authenticate with Catalyst Center", "error", err)
	}
	logg.Info("authenticated with Catalyst Center")

	// --- Admin surface (health + metrics) ---
	adm := admin.New(logger.L(), cfg.ServiceName, cfg.AdminAddr, map[string]admin.Check{
		"catalyst_center": client.Verify,
	})
	go adm.Start()

	// --- MCP server ---
	s := toolserver.New(
		"Catalyst Center MCP Server",
		version,
		"Provides access to Cisco Catalyst Center for network device management, site topology, client analytics, assurance, compliance and event data.",
		logger.L(),
	)
	tools.Register(s, client)

	if err := toolserver.Serve(ctx, logger.L(), s, cfg.Transport, cfg.MCPAddr()); err != nil {
		logg.Fatalw("mcp server failed", "error", err)
	}

	logg.Info("shutting down [catc-adapter]...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adm.Shutdown(shutdownCtx)
}
