package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the settings that can come from the environment. Values are
// read from variables with the prefix "BBVMS_", e.g.
// BBVMS_BASE_URL=https://acme.bbvms.com BBVMS_HTTP_TIMEOUT=20s.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"     default:"http://trial.bbvms.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	Debug       bool          `envconfig:"DEBUG"        default:"false"`
}

// LoadConfig populates Config from environment variables (prefix BBVMS_).
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("BBVMS", &c); err != nil {
		return c, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return c, nil
}

// Options converts the config into construction options. A zero
// HTTPTimeout leaves the transport without a timeout.
func (cfg Config) Options() []Option {
	opts := []Option{WithBaseURL(cfg.BaseURL), WithDebugLogging(cfg.Debug)}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPTimeout(cfg.HTTPTimeout))
	}
	return opts
}

// NewFromEnv constructs a Client from LoadConfig. opts are applied after the
// environment settings and win over them.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(append(cfg.Options(), opts...)...)
}
