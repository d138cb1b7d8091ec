package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the ISE adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	Host     string // ISE hostname or IP, scheme stripped by the client
	Username string
	Password string
	Version  string

	VerifySSL bool

	Transport string
	MCPHost   string
	MCPPort   int
	AdminAddr string
}

// Load reads configuration from the environment (and .env if present).
// Every missing required variable is reported in the returned error so a
// misconfigured process fails startup with the full list.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "ise-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		Version:     pkgconfig.GetEnv("ISE_VERSION", "1.0"),
		VerifySSL:   pkgconfig.GetEnvBool("ISE_VERIFY_SSL", false),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8005),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9005"),
	}

	var errs []error

	var err error
	if cfg.Host, err = pkgconfig.RequireEnv("ISE_HOST"); err != nil {
		errs = append(errs, err)
	}
	if cfg.Username, err = pkgconfig.RequireEnv("ISE_USERNAME"); err != nil {
		errs = append(errs, err)
	}
	if cfg.Password, err = pkgconfig.RequireEnv("ISE_PASSWORD"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("ise-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
