package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Roles supported by the adapter. The role picks which tools are registered.
const (
	RoleNOC      = "noc"      // monitoring plus firmware scheduling
	RoleSysAdmin = "sysadmin" // read-only
	RoleAll      = "all"      // every tool
)

// Config holds the runtime configuration for the Meraki adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	APIKey  string
	BaseURL string
	Role    string

	Transport string
	MCPHost   string
	MCPPort   int
	AdminAddr string
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "meraki-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		BaseURL:     pkgconfig.GetEnv("MERAKI_BASE_URL", "https://api.meraki.com/api/v1"),
		Role:        pkgconfig.GetEnv("MCP_ROLE", RoleNOC),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8000),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9000"),
	}

	var errs []error

	var err error
	if cfg.APIKey, err = pkgconfig.RequireEnv("MERAKI_KEY"); err != nil {
		errs = append(errs, err)
	}
	switch cfg.Role {
	case RoleNOC, RoleSysAdmin, RoleAll:
	default:
		errs = append(errs, fmt.Errorf("MCP_ROLE must be one of noc, sysadmin, all (got %q)", cfg.Role))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("meraki-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
