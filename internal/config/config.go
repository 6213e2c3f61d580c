// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Locale    LocaleConfig    `yaml:"locale" mapstructure:"locale"`
	Import    ImportConfig    `yaml:"import" mapstructure:"import"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// NominatimConfig configures the Nominatim geocoding client.
type NominatimConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	CountryCodes   string `yaml:"country_codes" mapstructure:"country_codes"`
	RateIntervalMS int    `yaml:"rate_interval_ms" mapstructure:"rate_interval_ms"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// RateInterval returns the minimum interval between Nominatim requests.
func (c NominatimConfig) RateInterval() time.Duration {
	return time.Duration(c.RateIntervalMS) * time.Millisecond
}

// Timeout returns the HTTP timeout for Nominatim requests.
func (c NominatimConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// SearchConfig configures the web-search fallback.
type SearchConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	MaxResults  int    `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the HTTP timeout for search requests.
func (c SearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LocaleConfig identifies the city and region appended to bare addresses.
type LocaleConfig struct {
	City   string `yaml:"city" mapstructure:"city"`
	Region string `yaml:"region" mapstructure:"region"`
}

// ImportConfig configures values stamped onto produced import rows.
type ImportConfig struct {
	BatchTag   string `yaml:"batch_tag" mapstructure:"batch_tag"`
	CameraType string `yaml:"camera_type" mapstructure:"camera_type"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CAMIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", "nola-camera-import/1.0 (github.com/antoineclaval/new-orleans-surveillance-map)")
	v.SetDefault("nominatim.country_codes", "us")
	v.SetDefault("nominatim.rate_interval_ms", 1100)
	v.SetDefault("nominatim.timeout_secs", 10)
	v.SetDefault("search.enabled", true)
	v.SetDefault("search.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout_secs", 10)
	v.SetDefault("locale.city", "New Orleans")
	v.SetDefault("locale.region", "Louisiana")
	v.SetDefault("import.batch_tag", "nopd_import_2026-02-27")
	v.SetDefault("import.camera_type", "nopd")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
