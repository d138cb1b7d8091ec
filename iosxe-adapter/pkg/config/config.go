package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the IOS XE adapter. Device
// credentials come from the environment only; tools never accept them as
// parameters.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	Username string
	Password string
	SSHPort  int
	Timeout  time.Duration

	Transport string
	MCPHost   string
	MCPPort   int
	AdminAddr string
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "iosxe-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		SSHPort:     pkgconfig.GetEnvInt("IOS_XE_SSH_PORT", 22),
		Timeout:     pkgconfig.GetEnvDuration("IOS_XE_TIMEOUT", 30*time.Second),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8003),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9003"),
	}

	var errs []error

	var err error
	if cfg.Username, err = pkgconfig.RequireEnv("IOS_XE_USERNAME"); err != nil {
		errs = append(errs, err)
	}
	if cfg.Password, err = pkgconfig.RequireEnv("IOS_XE_PASSWORD"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("iosxe-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
