package config

import (
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the ThousandEyes adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	Token   string
	BaseURL string

	Transport string
	MCPHost   string
	MCPPort   int
	AdminAddr string
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "thousandeyes-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		BaseURL:     pkgconfig.GetEnv("TE_BASE_URL", "https://api.thousandeyes.com/v7"),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8004),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9004"),
	}

	var err error
	if cfg.Token, err = pkgconfig.RequireEnv("TE_TOKEN"); err != nil {
		return nil, fmt.Errorf("thousandeyes-adapter configuration: %w", err)
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
