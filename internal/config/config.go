// Package config loads service configuration from flags, environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MOODREC_ADDR.
const EnvPrefix = "MOODREC"

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds service configuration.
type Config struct {
	Addr          string `mapstructure:"addr"`
	AssetRoot     string `mapstructure:"asset_root"`
	ModelPath     string `mapstructure:"model_path"`
	EncoderPath   string `mapstructure:"encoder_path"`
	DatabaseURL   string `mapstructure:"database_url"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	Placeholder   string `mapstructure:"placeholder"`
	SampleSize    int    `mapstructure:"sample_size"`
	LogLevel      string `mapstructure:"log_level"`
	LogDev        bool   `mapstructure:"log_dev"`
}

// defaults are applied before any other source.
var defaults = map[string]any{
	"addr":            "127.0.0.1:8080",
	"asset_root":      "static",
	"model_path":      "models/mood_model.json",
	"encoder_path":    "models/label_encoder.json",
	"database_url":    "",
	"public_base_url": "",
	"placeholder":     "placeholder.jpg",
	"sample_size":     6,
	"log_level":       "info",
	"log_dev":         false,
}

// Load reads configuration. Precedence: flags, environment, config file,
// defaults. args excludes the program name.
func Load(args []string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	flags := pflag.NewFlagSet("mood-recommender", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a config file (yaml, json or toml)")
	flags.String("addr", "", "listen address")
	flags.String("asset-root", "", "directory holding image/ and audio/ assets")
	flags.String("model-path", "", "classifier artifact")
	flags.String("encoder-path", "", "label decoder artifact")
	flags.String("database-url", "", "PostgreSQL URL for the song catalog (built-in catalog when empty)")
	flags.String("public-base-url", "", "absolute base for generated asset URLs (request host when empty)")
	flags.String("log-level", "", "log level")
	flags.Bool("log-dev", false, "human-readable logs")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// Only flags the user set override other sources.
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value constraints.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if c.AssetRoot == "" {
		return fmt.Errorf("%w: asset_root is required", ErrInvalidConfig)
	}
	if c.ModelPath == "" || c.EncoderPath == "" {
		return fmt.Errorf("%w: model_path and encoder_path are required", ErrInvalidConfig)
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("%w: sample_size must be at least 1, got %d", ErrInvalidConfig, c.SampleSize)
	}
	if c.PublicBaseURL != "" {
		u, err := url.Parse(c.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: public_base_url must be absolute, got %q", ErrInvalidConfig, c.PublicBaseURL)
		}
	}
	return nil
}

// BaseURL returns the parsed public base URL, or nil when unset.
func (c *Config) BaseURL() *url.URL {
	if c.PublicBaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.PublicBaseURL)
	if err != nil {
		return nil
	}
	return u
}
