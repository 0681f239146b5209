package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendJSON, cfg.StoreBackend)
	assert.Equal(t, 2222, cfg.SSHPort)
	assert.Equal(t, 720*time.Hour, cfg.RedisTTL)
	assert.Equal(t, filepath.Join(tmp, "spire-run"), cfg.DataDir)
	assert.Equal(t, filepath.Join(tmp, "spire-run", "runs.json"), cfg.RunsFile())
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPIRE_STORE", "redis")
	t.Setenv("SPIRE_REDIS_ADDR", "cache:6380")
	t.Setenv("SPIRE_REDIS_TTL", "1h")
	t.Setenv("SPIRE_SEED", "1234")
	t.Setenv("SPIRE_DATA_DIR", "/srv/spire")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.RedisTTL)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, "/srv/spire", cfg.DataDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name, key, value, msg string
	}{
		{"unknown backend", "SPIRE_STORE", "sqlite", "unknown store backend"},
		{"bad port", "SPIRE_SSH_PORT", "70000", "out of range"},
		{"unparsable seed", "SPIRE_SEED", "abc", "load config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SPIRE_DATA_DIR", t.TempDir())
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.msg), err.Error())
		})
	}
}

func TestDefaultDataDirFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := DefaultDataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".local", "share", "spire-run")), dir)
}
