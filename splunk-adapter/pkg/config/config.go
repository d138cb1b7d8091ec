package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the Splunk adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	Host      string
	Port      int
	APIKey    string
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
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "splunk-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		Port:        pkgconfig.GetEnvInt("SPLUNK_PORT", 8089),
		VerifySSL:   pkgconfig.GetEnvBool("SPLUNK_VERIFY_SSL", false),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8006),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9006"),
	}

	var errs []error

	var err error
	if cfg.Host, err = pkgconfig.RequireEnv("SPLUNK_HOST"); err != nil {
		errs = append(errs, err)
	}
	if cfg.APIKey, err = pkgconfig.RequireEnv("SPLUNK_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("splunk-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// BackendURL returns the Splunk MCP backend endpoint.
func (c *Config) BackendURL() string {
	return fmt.Sprintf("https://%s:%d/services/mcp", c.Host, c.Port)
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
