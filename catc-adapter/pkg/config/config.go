package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	pkgconfig "github.com/netops-mcp/adapters/pkg/config"
)

// Config holds the runtime configuration for the Catalyst Center adapter.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	BaseURL  string // e.g. https://catalyst-center.example.com
	Username string
	Password string

	// SecretID optionally names an AWS Secrets Manager secret holding
	// {"username": ..., "password": ...}; when set it overrides the env
	// credential pair.
	SecretID  string
	AWSRegion string

	VerifySSL bool

	Transport string // "stdio" or "http"
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
		ServiceName: pkgconfig.GetEnv("SERVICE_NAME", "catc-adapter"),
		Env:         pkgconfig.GetEnv("ENV", "dev"),
		LogLevel:    pkgconfig.GetEnv("LOG_LEVEL", "info"),
		SecretID:    pkgconfig.GetEnv("CATC_SECRET_ID", ""),
		AWSRegion:   pkgconfig.GetEnv("AWS_REGION", "us-east-1"),
		VerifySSL:   pkgconfig.GetEnvBool("CATC_VERIFY_SSL", false),
		Transport:   pkgconfig.GetEnv("MCP_TRANSPORT", "http"),
		MCPHost:     pkgconfig.GetEnv("MCP_HOST", "localhost"),
		MCPPort:     pkgconfig.GetEnvInt("MCP_PORT", 8002),
		AdminAddr:   pkgconfig.GetEnv("ADMIN_ADDR", ":9002"),
	}

	var errs []error

	var err error
	if cfg.BaseURL, err = pkgconfig.RequireEnv("CATC_URL"); err != nil {
		errs = append(errs, err)
	}
	if cfg.SecretID == "" {
		if cfg.Username, err = pkgconfig.RequireEnv("CATC_USERNAME"); err != nil {
			errs = append(errs, err)
		}
		if cfg.Password, err = pkgconfig.RequireEnv("CATC_PASSWORD"); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catc-adapter configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// MCPAddr returns the host:port the MCP HTTP transport binds to.
func (c *Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCPHost, c.MCPPort)
}
