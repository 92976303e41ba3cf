// Package config loads settings for the gophauth CLI: defaults, then an
// optional JSON file (-c/-config), then the GOPHAUTH_* environment, then flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the CLI.
//
// ServerURL is the base URL of the HTTP API. RequestTimeout bounds every
// call made by the API client.
type Config struct {
	ServerURL      string        `env:"GOPHAUTH_SERVER_URL"`
	RequestTimeout time.Duration `env:"GOPHAUTH_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults and the sources found in args
// and the environment. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server url must not be empty")
	}
	return cfg, nil
}
