package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL",
	"HOLOCRON_PORT", "HOLOCRON_DB_URL", "HOLOCRON_AUTO_MIGRATE",
	"HOLOCRON_SEED_FILE", "HOLOCRON_LOG_LEVEL", "HOLOCRON_LOG_FORMAT",
}

// clearEnv обнуляет переменные; t.Setenv восстановит их после теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, def(), cfg)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoad_JSONThenEnv(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"port":"8080","dbUrl":"postgres://u:p@db/holocron","logLevel":"debug"}`), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgresql://u:p@db/holocron", cfg.DBURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	t.Setenv("PORT", "5000")
	t.Setenv("HOLOCRON_AUTO_MIGRATE", "yes")
	t.Setenv("HOLOCRON_LOG_FORMAT", "text")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "text", cfg.LogFormat)

	t.Setenv("HOLOCRON_PORT", "6000")
	t.Setenv("DATABASE_URL", "postgres://paas/db")
	t.Setenv("HOLOCRON_DB_URL", "postgresql://own/db")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "6000", cfg.Port)
	assert.Equal(t, "postgresql://own/db", cfg.DBURL)
}

func TestLoad_BrokenJSON(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"port":`), 0o644))

	_, err := Load(p)
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "TRUE": true, " yes ": true, "0": false, "false": false, "No": false} {
		got, ok := ParseBool(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseBool("maybe")
	assert.False(t, ok)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Config{Port: "8080"}.Addr())
	assert.Equal(t, "127.0.0.1:8080", Config{Port: "127.0.0.1:8080"}.Addr())
}
