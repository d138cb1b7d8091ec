package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReportsEveryMissingVariable(t *testing.T) {
	t.Setenv("CATC_URL", "")
	t.Setenv("CATC_USERNAME", "")
	t.Setenv("CATC_PASSWORD", "")
	t.Setenv("CATC_SECRET_ID", "")

	_, err := Load()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "CATC_URL")
	assert.Contains(t, err.Error(), "CATC_USERNAME")
	assert.Contains(t, err.Error(), "CATC_PASSWORD")
}

func TestLoad_SecretIDWaivesEnvCredentials(t *testing.T) {
	t.Setenv("CATC_URL", "https://catc.example.com")
	t.Setenv("CATC_USERNAME", "")
	t.Setenv("CATC_PASSWORD", "")
	t.Setenv("CATC_SECRET_ID", "prod/catc/credentials")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod/catc/credentials", cfg.SecretID)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, "localhost:8002", cfg.MCPAddr())
}
