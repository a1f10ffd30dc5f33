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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 30, c.Forecast.DefaultHorizon)
	assert.Equal(t, 5*time.Minute, c.Forecast.CacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, c.Kafka.Brokers)
	assert.Equal(t, -1, c.Kafka.RequiredAcks)
	assert.Equal(t, "nts-forecaster", c.Kafka.Consumer.GroupID)
	assert.Equal(t, 200*time.Millisecond, c.Kafka.Consumer.BackoffMin)
	assert.Equal(t, 24*time.Hour, c.Queue.ResultTTL)
	assert.False(t, c.Redis.Enabled)
	assert.NoError(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
forecast:
  default_horizon: 14
  cache_ttl: 1m
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 14, c.Forecast.DefaultHorizon)
	assert.Equal(t, time.Minute, c.Forecast.CacheTTL)
	assert.Equal(t, 4, c.Forecast.Workers)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "forecast.results", c.Kafka.ResultsTopic)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "logger:\n  format: xml\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger.format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadOptionalFallsBackToDefaults(t *testing.T) {
	c, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 30, c.Forecast.DefaultHorizon)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NTS_ENV", "staging")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("FORECAST_HORIZON", "60")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("CLICKHOUSE_HOST", "ch")

	c, err := LoadWithEnv(writeConfig(t, "environment: development\n"))
	require.NoError(t, err)

	assert.Equal(t, "staging", c.Environment)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, 60, c.Forecast.DefaultHorizon)
	assert.True(t, c.Redis.Enabled)
	assert.Equal(t, "redis:6379", c.Redis.Addr)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.Kafka.Brokers)
	assert.True(t, c.ClickHouse.Enabled)
	assert.Equal(t, "ch", c.ClickHouse.Host)
}

func TestEnvOverrideInvalidPortKeepsFile(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	c, err := LoadWithEnv(writeConfig(t, "server:\n  port: 8181\n"))
	require.NoError(t, err)
	assert.Equal(t, 8181, c.Server.Port)
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 1, 42},
		{" 9090 ", 1, 9090},
		{"x", 7, 7},
		{"", 3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envInt(tt.in, tt.def), "in=%q", tt.in)
	}
}
