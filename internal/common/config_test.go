package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ws://localhost:8000", cfg.Storage.Address)
	assert.Equal(t, "cartera", cfg.Storage.Namespace)
	assert.Contains(t, cfg.Session.AmericanTickers, "TARA")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cartera.toml")
	content := `
environment = "production"

[server]
port = 9090

[session]
american_tickers = ["TARA", "PLTR"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"TARA", "PLTR"}, cfg.Session.AmericanTickers)
	// Untouched sections keep their defaults.
	assert.Equal(t, "ws://localhost:8000", cfg.Storage.Address)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CARTERA_PORT", "7070")
	t.Setenv("CARTERA_DB_URL", "ws://db.internal:8000")
	t.Setenv("CARTERA_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CARTERA_AMERICAN_TICKERS", "tara,pltr")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "ws://db.internal:8000", cfg.Storage.Address)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"TARA", "PLTR"}, cfg.Session.AmericanTickers)
}

func TestLoadConfig_InvalidPortIgnored(t *testing.T) {
	t.Setenv("CARTERA_PORT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestYahooConfigGetTimeout(t *testing.T) {
	c := YahooConfig{Timeout: "45s"}
	assert.Equal(t, "45s", c.Timeout)
	assert.Equal(t, float64(45), c.GetTimeout().Seconds())

	bad := YahooConfig{Timeout: "bogus"}
	assert.Equal(t, float64(30), bad.GetTimeout().Seconds())
}
