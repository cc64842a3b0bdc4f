package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, 60*time.Second, cfg.RequestTimeout())
	require.Equal(t, 15*time.Second, cfg.FetchTimeout())
	require.Equal(t, BackendColly, cfg.Fetcher.Backend)
	require.False(t, cfg.Snapshot.Enabled)
	require.True(t, cfg.Logging.Development)
	require.Equal(t, goodshort.DefaultSite(), cfg.Site())
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  request_timeout_seconds: 30
upstream:
  base_url: https://mirror.example/id/
  default_lang: en
http:
  timeout_seconds: 45
  user_agent: custom-agent
fetcher:
  backend: HEADLESS
  headless:
    max_parallel: 2
    nav_timeout_seconds: 30
snapshot:
  enabled: true
  backend: gcs
  gcs_bucket: drift-bucket
  prefix: pages
logging:
  development: false
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout())
	require.Equal(t, "https://mirror.example/id", cfg.Upstream.BaseURL)
	require.Equal(t, "en", cfg.Site().Lang(""))
	require.Equal(t, goodshort.DefaultCDNURL, cfg.Site().CDNURL)
	require.Equal(t, "custom-agent", cfg.HTTP.UserAgent)
	require.Equal(t, BackendHeadless, cfg.Fetcher.Backend)
	require.Equal(t, 30*time.Second, cfg.NavTimeout())
	require.Equal(t, SnapshotGCS, cfg.Snapshot.Backend)
	require.Equal(t, "drift-bucket", cfg.Snapshot.GCSBucket)
	require.False(t, cfg.Logging.Development)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GOODSHORT_HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("GOODSHORT_FETCHER_BACKEND", "tls")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.FetchTimeout())
	require.Equal(t, BackendTLS, cfg.Fetcher.Backend)
}

func TestLoadPrefixedPortWins(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GOODSHORT_SERVER_PORT", "7000")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server:   ServerConfig{Port: 3000, RequestTimeoutSeconds: 60},
		Upstream: UpstreamConfig{BaseURL: goodshort.DefaultBaseURL, CDNURL: goodshort.DefaultCDNURL},
		HTTP:     HTTPConfig{TimeoutSeconds: 10},
		Fetcher:  FetcherConfig{Backend: BackendColly},
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"invalid request timeout", func(c *Config) { c.Server.RequestTimeoutSeconds = 0 }, "server.request_timeout_seconds"},
		{"relative base url", func(c *Config) { c.Upstream.BaseURL = "/id" }, "upstream.base_url"},
		{"bad cdn scheme", func(c *Config) { c.Upstream.CDNURL = "ftp://cdn" }, "upstream.cdn_url"},
		{"invalid timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }, "http.timeout_seconds"},
		{"unknown backend", func(c *Config) { c.Fetcher.Backend = "curl" }, "fetcher.backend"},
		{
			"headless missing max parallel",
			func(c *Config) {
				c.Fetcher.Backend = BackendHeadless
				c.Fetcher.Headless.NavTimeoutSec = 10
			},
			"fetcher.headless.max_parallel",
		},
		{
			"headless missing nav timeout",
			func(c *Config) {
				c.Fetcher.Backend = BackendHeadless
				c.Fetcher.Headless.MaxParallel = 1
			},
			"fetcher.headless.nav_timeout_seconds",
		},
		{
			"local snapshot without dir",
			func(c *Config) { c.Snapshot = SnapshotConfig{Enabled: true, Backend: SnapshotLocal} },
			"snapshot.dir",
		},
		{
			"gcs snapshot without bucket",
			func(c *Config) { c.Snapshot = SnapshotConfig{Enabled: true, Backend: SnapshotGCS} },
			"snapshot.gcs_bucket",
		},
		{
			"unknown snapshot backend",
			func(c *Config) { c.Snapshot = SnapshotConfig{Enabled: true, Backend: "s3"} },
			"snapshot.backend",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}

func TestDisabledSnapshotSkipsValidation(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Server:   ServerConfig{Port: 3000, RequestTimeoutSeconds: 60},
		Upstream: UpstreamConfig{BaseURL: goodshort.DefaultBaseURL, CDNURL: goodshort.DefaultCDNURL},
		HTTP:     HTTPConfig{TimeoutSeconds: 10},
		Fetcher:  FetcherConfig{Backend: BackendTLS},
		Snapshot: SnapshotConfig{Backend: "anything"},
	}
	require.NoError(t, cfg.Validate())
}
