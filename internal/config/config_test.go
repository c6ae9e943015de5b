package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/trade_text_builder/internal/config"
	"github.com/vitos/trade_text_builder/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ETH", cfg.Settings.Symbol)
	assert.Equal(t, 5.0, cfg.Settings.RiskPct)
	assert.Equal(t, 20.0, cfg.Settings.Leverage)
	assert.Equal(t, 50.0, cfg.Settings.StopDistance)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
settings:
  symbol: btc
  risk_pct: 2.5
  leverage: 10
server:
  port: 9090
logging:
  level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Settings.RiskPct)
	assert.Equal(t, 10.0, cfg.Settings.Leverage)
	assert.Equal(t, 50.0, cfg.Settings.StopDistance) // untouched default
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "BTC", cfg.DomainSettings().Symbol)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "settings:\n  leverage: 10\n")
	t.Setenv("TRADETEXT_LEVERAGE", "25")
	t.Setenv("TRADETEXT_STOP_DISTANCE", "30")
	t.Setenv("TRADETEXT_SYMBOL", "sol")
	t.Setenv("TRADETEXT_PORT", "7070")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.Settings.Leverage)
	assert.Equal(t, 30.0, cfg.Settings.StopDistance)
	assert.Equal(t, "SOL", cfg.DomainSettings().Symbol)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TRADETEXT_RISK_PCT", "five")
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NegativeSettings(t *testing.T) {
	path := writeConfig(t, "settings:\n  risk_pct: -1\n")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "settings: [\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Settings.Leverage)
}
