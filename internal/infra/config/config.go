// Package config loads application configuration: a YAML file describing the
// tool providers plus environment variable overrides for scalar settings.
// All scalar fields have safe defaults so the binary runs locally with just a
// providers file.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Transport kinds accepted for a provider connection.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"
)

const (
	envKeyListenAddr = "TOOLRELAY_ADDR"
	envKeyDBPath     = "TOOLRELAY_DB"
	envKeyAuthSecret = "TOOLRELAY_AUTH_SECRET"

	defaultListenAddr = "0.0.0.0:8080"
)

// Provider describes how to reach one tool provider.
type Provider struct {
	// Command and Args spawn a subprocess for the stdio transport.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	// Transport selects the connection kind; empty means stdio.
	Transport string `yaml:"transport"`
	// URL is the endpoint for the streamable_http transport.
	URL string `yaml:"url"`
	// Env holds extra environment overrides for the subprocess.
	Env map[string]string `yaml:"env"`
}

// Auth holds the optional admin authentication settings. The admin surface
// (registry reload) stays open when AdminTokenHash is empty.
type Auth struct {
	// AdminTokenHash is the bcrypt hash of the admin token.
	AdminTokenHash string `yaml:"admin_token_hash"`
	// Secret signs admin JWTs; overridable via TOOLRELAY_AUTH_SECRET.
	Secret string `yaml:"secret"`
}

// Config is the full runtime configuration.
type Config struct {
	ListenAddr string              `yaml:"listen_addr"`
	DBPath     string              `yaml:"db_path"`
	Providers  map[string]Provider `yaml:"providers"`
	Auth       Auth                `yaml:"auth"`
}

// Load reads the YAML file at path and applies env overrides and defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes raw YAML configuration, applies env overrides and defaults,
// and validates every provider entry.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.ListenAddr = envOr(envKeyListenAddr, coalesce(cfg.ListenAddr, defaultListenAddr))
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)
	cfg.Auth.Secret = envOr(envKeyAuthSecret, cfg.Auth.Secret)

	for name, p := range cfg.Providers {
		if err := validateProvider(name, p); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// ProviderOrder returns provider ids sorted lexicographically. The loader
// connects in this order, which makes the first-wins rule for duplicate tool
// names deterministic across runs.
func (c Config) ProviderOrder() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthEnabled reports whether the admin surface requires authentication.
func (c Config) AuthEnabled() bool {
	return c.Auth.AdminTokenHash != ""
}

func validateProvider(name string, p Provider) error {
	switch p.Transport {
	case "", TransportStdio:
		if p.Command == "" {
			return fmt.Errorf("config: provider %q: stdio transport requires a command", name)
		}
	case TransportStreamableHTTP:
		if p.URL == "" {
			return fmt.Errorf("config: provider %q: streamable_http transport requires a url", name)
		}
	default:
		return fmt.Errorf("config: provider %q: unknown transport %q", name, p.Transport)
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// coalesce returns val if non-empty, otherwise fallback.
func coalesce(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
