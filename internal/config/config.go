// Package config loads gagesite configuration from an optional YAML file
// overlaid with GAGESITE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "GAGESITE_"

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "gagesite.yml"

// Config holds the application configuration.
type Config struct {
	ListenAddr string `koanf:"listen_addr"`
	SiteDir    string `koanf:"site_dir"`
	// RemoteBaseURL, when set, makes partials and staff data come from a
	// remote static host instead of SiteDir.
	RemoteBaseURL string `koanf:"remote_base_url"`
	// PublicURL is the site's own public address. Pages that load their
	// include scripts by absolute URL under it still read from SiteDir.
	PublicURL string `koanf:"public_url"`
	DBPath    string `koanf:"db_path"`

	// ScrapeInterval is the raw duration string; zero or empty disables
	// periodic scraping. Validate parses it into ScrapeEvery.
	ScrapeInterval    string        `koanf:"scrape_interval"`
	ScrapeEvery       time.Duration `koanf:"-"`
	HSSAABaseURL      string        `koanf:"hssaa_base_url"`
	SchoolID          int           `koanf:"school_id"`
	SportsOutDir      string        `koanf:"sports_out_dir"`
	ScrapeConcurrency int           `koanf:"scrape_concurrency"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:        "127.0.0.1:8080",
		SiteDir:           "site",
		DBPath:            "gagesite.db",
		ScrapeInterval:    "0",
		HSSAABaseURL:      "https://www.hssaa.ca",
		SchoolID:          12,
		ScrapeConcurrency: 4,
	}
}

// HasRemoteSource reports whether site assets come from a remote host.
func (c *Config) HasRemoteSource() bool {
	return c.RemoteBaseURL != ""
}

// Load reads the YAML file at path when it exists, overlays GAGESITE_*
// variables (GAGESITE_LISTEN_ADDR -> listen_addr) and returns a validated
// Config. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field values and derives ScrapeEvery.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	if c.SiteDir == "" && c.RemoteBaseURL == "" {
		return fmt.Errorf("site_dir or remote_base_url is required")
	}

	for key, raw := range map[string]string{"remote_base_url": c.RemoteBaseURL, "public_url": c.PublicURL} {
		if raw != "" && !isHTTPURL(raw) {
			return fmt.Errorf("%s %q must be an absolute http(s) URL", key, raw)
		}
	}

	every := time.Duration(0)
	if raw := strings.TrimSpace(c.ScrapeInterval); raw != "" && raw != "0" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("scrape_interval has invalid duration %q: %w", raw, err)
		}
		if parsed < 0 {
			return fmt.Errorf("scrape_interval must be non-negative, got %s", parsed)
		}
		every = parsed
	}
	c.ScrapeEvery = every

	if c.ScrapeConcurrency < 0 {
		return fmt.Errorf("scrape_concurrency must be non-negative")
	}

	if c.SchoolID <= 0 {
		return fmt.Errorf("school_id must be positive, got %d", c.SchoolID)
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
