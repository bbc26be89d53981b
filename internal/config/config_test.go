package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cosmo-api/internal/config"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/redis"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, redis.ModeSingle, cfg.RedisMode)
	assert.Equal(t, time.Hour, cfg.RosterCacheTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.ShareTTL)
	assert.Equal(t, 6, cfg.ShortCodeLength)
	assert.Equal(t, 10, cfg.ShareMaxAttempts)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("REDIS_MODE", "sentinel")
	t.Setenv("REDIS_MASTER", "cosmo")
	t.Setenv("REDIS_ADDR", "s1:26379,s2:26379")
	t.Setenv("SHARE_TTL", "48h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, 48*time.Hour, cfg.ShareTTL)

	rc := cfg.RedisConfig()
	assert.Equal(t, redis.ModeSentinel, rc.Mode)
	assert.Equal(t, "cosmo", rc.MasterName)

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=9090\nROSTER_FILE=roster.yaml\n"), 0o600))

	// real environment wins over the file
	t.Setenv("ROSTER_FILE", "other.yaml")
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_PORT") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "other.yaml", cfg.RosterFile)

	_, err = config.Load(filepath.Join(dir, "missing.env"))
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unparseable port", map[string]string{"GRPC_PORT": "http"}},
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}},
		{"same ports", map[string]string{"GRPC_PORT": "9000", "HTTP_PORT": "9000"}},
		{"unknown redis mode", map[string]string{"REDIS_MODE": "ring"}},
		{"sentinel without master", map[string]string{"REDIS_MODE": "sentinel"}},
		{"zero share ttl", map[string]string{"SHARE_TTL": "0s"}},
		{"short code too short", map[string]string{"SHORT_CODE_LENGTH": "2"}},
		{"no attempts", map[string]string{"SHARE_MAX_ATTEMPTS": "0"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}
