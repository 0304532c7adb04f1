package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

const defaultAddr = "127.0.0.1:8123"

// Config is the process-wide configuration, built once at startup and
// immutable afterwards.
type Config struct {
	BaseURL   string `yaml:"url"`
	Username  string `yaml:"username"`
	APIToken  string `yaml:"api_token"`
	SpaceKey  string `yaml:"space_key"`
	ScopeRoot string `yaml:"scope_root"`
	Addr      string `yaml:"addr"`
}

// Load reads an optional YAML file, applies environment overrides and
// validates the result. A missing required value is a startup error.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CONFLUENCE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CONFLUENCE_USERNAME"); v != "" {
		cfg.Username = v
	}
	// CONFLUENCE_API_TOKEN wins over the legacy CONFLUENCE_TOKEN
	if v := os.Getenv("CONFLUENCE_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("CONFLUENCE_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("CONFLUENCE_SPACE_KEY"); v != "" {
		cfg.SpaceKey = v
	}
	if v := os.Getenv("CONFLUENCE_PARENT_PAGE"); v != "" {
		cfg.ScopeRoot = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Addr = v
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.APIToken, validation.Required),
		validation.Field(&c.SpaceKey, validation.Required),
	)
}
