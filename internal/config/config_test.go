package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every GAGESITE_ env var that Load() reads.
var allConfigKeys = []string{
	"GAGESITE_LISTEN_ADDR",
	"GAGESITE_SITE_DIR",
	"GAGESITE_REMOTE_BASE_URL",
	"GAGESITE_PUBLIC_URL",
	"GAGESITE_DB_PATH",
	"GAGESITE_SCRAPE_INTERVAL",
	"GAGESITE_HSSAA_BASE_URL",
	"GAGESITE_SCHOOL_ID",
	"GAGESITE_SPORTS_OUT_DIR",
	"GAGESITE_SCRAPE_CONCURRENCY",
}

// isolateConfigEnv saves and unsets all GAGESITE_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gagesite.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "site", cfg.SiteDir)
	assert.Equal(t, "gagesite.db", cfg.DBPath)
	assert.Equal(t, "https://www.hssaa.ca", cfg.HSSAABaseURL)
	assert.Equal(t, 12, cfg.SchoolID)
	assert.Equal(t, 4, cfg.ScrapeConcurrency)
	assert.Zero(t, cfg.ScrapeEvery)
	assert.False(t, cfg.HasRemoteSource())
}

func TestLoad_File(t *testing.T) {
	isolateConfigEnv(t)
	path := writeConfig(t, `
listen_addr: 0.0.0.0:9090
site_dir: /srv/gage
scrape_interval: 6h
sports_out_dir: /srv/gage/assets/data/sports
scrape_concurrency: 2
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/srv/gage", cfg.SiteDir)
	assert.Equal(t, 6*time.Hour, cfg.ScrapeEvery)
	assert.Equal(t, "/srv/gage/assets/data/sports", cfg.SportsOutDir)
	assert.Equal(t, 2, cfg.ScrapeConcurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)
	path := writeConfig(t, "listen_addr: 0.0.0.0:9090\nschool_id: 7\n")
	t.Setenv("GAGESITE_LISTEN_ADDR", "127.0.0.1:7070")
	t.Setenv("GAGESITE_DB_PATH", "/tmp/test.db")
	t.Setenv("GAGESITE_REMOTE_BASE_URL", "https://gage.example.org/")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7070", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.SchoolID)
	assert.True(t, cfg.HasRemoteSource())
}

func TestLoad_InvalidScrapeInterval(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GAGESITE_SCRAPE_INTERVAL", "not-a-duration")

	cfg, err := Load("")

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrape_interval")
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateConfigEnv(t)
	path := writeConfig(t, "listen_addr: [unterminated\n")

	cfg, err := Load(path)

	assert.Nil(t, cfg)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative concurrency", mutate: func(c *Config) { c.ScrapeConcurrency = -1 }, wantErr: "scrape_concurrency"},
		{name: "negative interval", mutate: func(c *Config) { c.ScrapeInterval = "-5m" }, wantErr: "scrape_interval"},
		{name: "relative remote", mutate: func(c *Config) { c.RemoteBaseURL = "gage.example.org" }, wantErr: "remote_base_url"},
		{name: "relative public url", mutate: func(c *Config) { c.PublicURL = "/ecole" }, wantErr: "public_url"},
		{name: "public url", mutate: func(c *Config) { c.PublicURL = "https://www.gage.example/ecole/" }},
		{name: "no source", mutate: func(c *Config) { c.SiteDir = "" }, wantErr: "site_dir"},
		{name: "empty listen", mutate: func(c *Config) { c.ListenAddr = "" }, wantErr: "listen_addr"},
		{name: "bad school", mutate: func(c *Config) { c.SchoolID = 0 }, wantErr: "school_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
