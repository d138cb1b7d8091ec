package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the NetBox adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	URL   string // NetBox instance URL, e.g. https://netbox.example.com
	Token string

	VerifySSL bool

	Transport string
	MCPHost   string
	MCPPort   int
	AdminAddr string
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "netbox-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		VerifySSL:   pkgconfig.GetEnvBool("NETBOX_VERIFY_SSL", true),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8001),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9001"),
	}

	var errs []error

	var err error
	if cfg.URL, err = pkgconfig.RequireEnv("NETBOX_URL"); err != nil {
		errs = append(errs, err)
	}
	if cfg.Token, err = pkgconfig.RequireEnv("NETBOX_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("netbox-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
