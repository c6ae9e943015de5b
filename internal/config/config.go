package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vitos/trade_text_builder/internal/domain"
	"gopkg.in/yaml.v3"
)

const envPrefix = "TRADETEXT_"

type Config struct {
	Settings struct {
		Symbol       string  `yaml:"symbol"`
		RiskPct      float64 `yaml:"risk_pct"`
		Leverage     float64 `yaml:"leverage"`
		StopDistance float64 `yaml:"stop_distance"`
	} `yaml:"settings"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
}

// Default mirrors the sidebar defaults: ETH, 5% risk, 20x, 50$ stop.
func Default() *Config {
	cfg := &Config{}
	cfg.Settings.Symbol = "ETH"
	cfg.Settings.RiskPct = 5.0
	cfg.Settings.Leverage = 20.0
	cfg.Settings.StopDistance = 50.0
	cfg.Server.Port = 8080
	cfg.Logging.Level = "info"
	cfg.Export.Dir = "."
	return cfg
}

// Load reads an optional .env, then the YAML file, then TRADETEXT_* overrides.
// A missing YAML file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("SYMBOL"); ok {
		c.Settings.Symbol = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv("LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := lookupEnv("EXPORT_DIR"); ok {
		c.Export.Dir = v
	}

	floats := map[string]*float64{
		"RISK_PCT":      &c.Settings.RiskPct,
		"LEVERAGE":      &c.Settings.Leverage,
		"STOP_DISTANCE": &c.Settings.StopDistance,
	}
	for key, dst := range floats {
		v, ok := lookupEnv(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
		}
		*dst = f
	}

	if v, ok := lookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT: %w", envPrefix, err)
		}
		c.Server.Port = port
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate enforces the same minimums as the settings form.
func (c *Config) Validate() error {
	s := c.Settings
	if s.RiskPct < 0 || s.Leverage < 0 || s.StopDistance < 0 {
		return fmt.Errorf("%w: risk_pct, leverage and stop_distance must be >= 0", domain.ErrInvalidInput)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// DomainSettings converts the settings section for the trade service.
func (c *Config) DomainSettings() domain.Settings {
	return domain.Settings{
		Symbol:       strings.ToUpper(strings.TrimSpace(c.Settings.Symbol)),
		RiskPct:      c.Settings.RiskPct,
		Leverage:     c.Settings.Leverage,
		StopDistance: c.Settings.StopDistance,
	}
}
