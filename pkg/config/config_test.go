package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, []string{"*"}, c.Server.CORSOrigins)
	assert.Equal(t, time.Duration(0), c.Backend.Timeout)
	assert.True(t, c.Dashboard.MountChart)
	assert.NoError(t, c.Validate())
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	p := writeConfig(t, `
environment: production
server:
  port: 9090
backend:
  training_base_url: http://trainer:8000
  stock_data_base_url: http://stocks:5000
  timeout: 15s
dashboard:
  mount_chart: false
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "http://trainer:8000", c.Backend.TrainingBaseURL)
	assert.Equal(t, 15*time.Second, c.Backend.Timeout)
	assert.False(t, c.Dashboard.MountChart)
}

func TestLoadRejectsInvalid(t *testing.T) {
	p := writeConfig(t, `
backend:
  training_base_url: "not a url"
`)
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	p := writeConfig(t, "environment: staging\n")
	t.Setenv("TRAINING_BASE_URL", "http://10.0.0.5:8000")
	t.Setenv("STOCK_DATA_BASE_URL", "http://10.0.0.6:5000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	c, err := LoadWithEnv(p)
	require.NoError(t, err)
	assert.Equal(t, "staging", c.Environment)
	assert.Equal(t, "http://10.0.0.5:8000", c.Backend.TrainingBaseURL)
	assert.Equal(t, "http://10.0.0.6:5000", c.Backend.StockDataBaseURL)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Server.CORSOrigins)
}

func TestLoadWithEnvBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	_, err := LoadWithEnv("")
	assert.Error(t, err)
}
