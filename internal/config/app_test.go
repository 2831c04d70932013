package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 10*time.Second, s.Server.ReadTimeout)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "memory", s.Store.Backend)
	assert.Equal(t, "ptregime", s.Store.KeyPrefix)
	assert.Equal(t, 2025, s.Rates.FiscalYear)
}

func TestLoadSettings_File(t *testing.T) {
	s, err := LoadSettings(filepath.Join("testdata", "ptregime.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", s.Server.Addr)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, "redis", s.Store.Backend)
	assert.Equal(t, "cache:6379", s.Store.RedisAddr)
	assert.Equal(t, 720*time.Hour, s.Store.TTL)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	t.Setenv("PTREGIME_SERVER_ADDR", ":7070")
	t.Setenv("PTREGIME_STORE_BACKEND", "memory")
	t.Setenv("PTREGIME_RATES_FISCAL_YEAR", "2026")

	s, err := LoadSettings(filepath.Join("testdata", "ptregime.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", s.Server.Addr)
	assert.Equal(t, "memory", s.Store.Backend)
	assert.Equal(t, 2026, s.Rates.FiscalYear)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("PTREGIME_LOG_FORMAT", "xml")
	_, err := LoadSettings("")
	assert.ErrorContains(t, err, "log.format")

	_, err = LoadSettings(filepath.Join("testdata", "absent.yaml"))
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	s := Settings{
		Server: ServerSettings{Addr: ":8080"},
		Log:    LogSettings{Format: "json"},
		Store:  StoreSettings{Backend: "redis"},
	}
	assert.ErrorContains(t, s.Validate(), "redis_addr")

	s.Store.Backend = "sqlite"
	assert.ErrorContains(t, s.Validate(), "store.backend")

	s.Store.Backend = "memory"
	assert.NoError(t, s.Validate())
}
