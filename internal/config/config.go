// Package config loads and validates proxy configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

// EnvPrefix namespaces every environment override, e.g. GOODSHORT_HTTP_TIMEOUT_SECONDS.
const EnvPrefix = "GOODSHORT"

// Fetcher backends.
const (
	BackendColly    = "colly"
	BackendHeadless = "headless"
	BackendTLS      = "tls"
)

// Snapshot stores.
const (
	SnapshotMemory = "memory"
	SnapshotLocal  = "local"
	SnapshotGCS    = "gcs"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Fetcher  FetcherConfig  `mapstructure:"fetcher"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port                  int `mapstructure:"port"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// UpstreamConfig locates the scraped site.
type UpstreamConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIURL      string `mapstructure:"api_url"`
	CDNURL      string `mapstructure:"cdn_url"`
	Referer     string `mapstructure:"referer"`
	DefaultLang string `mapstructure:"default_lang"`
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	Accept         string `mapstructure:"accept"`
	AcceptLanguage string `mapstructure:"accept_language"`
}

// FetcherConfig selects the transport used for upstream pages.
type FetcherConfig struct {
	Backend  string         `mapstructure:"backend"`
	Headless HeadlessConfig `mapstructure:"headless"`
}

// HeadlessConfig configures the headless rendering backend.
type HeadlessConfig struct {
	MaxParallel   int `mapstructure:"max_parallel"`
	NavTimeoutSec int `mapstructure:"nav_timeout_seconds"`
}

// SnapshotConfig controls archiving of raw upstream pages.
type SnapshotConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from defaults, an optional file, and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Hosting platforms hand out the listen port as PORT.
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind port env: %w", err)
	}

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.request_timeout_seconds", 60)
	v.SetDefault("upstream.base_url", goodshort.DefaultBaseURL)
	v.SetDefault("upstream.api_url", goodshort.DefaultAPIURL)
	v.SetDefault("upstream.cdn_url", goodshort.DefaultCDNURL)
	v.SetDefault("upstream.referer", goodshort.DefaultReferer)
	v.SetDefault("upstream.default_lang", goodshort.DefaultLang)
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.accept", "")
	v.SetDefault("http.accept_language", "")
	v.SetDefault("fetcher.backend", BackendColly)
	v.SetDefault("fetcher.headless.max_parallel", 1)
	v.SetDefault("fetcher.headless.nav_timeout_seconds", 25)
	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.backend", SnapshotLocal)
	v.SetDefault("snapshot.dir", "data/snapshots")
	v.SetDefault("snapshot.gcs_bucket", "")
	v.SetDefault("snapshot.prefix", "snapshots")
	v.SetDefault("logging.development", true)
}

func (c *Config) normalize() {
	c.Fetcher.Backend = strings.ToLower(strings.TrimSpace(c.Fetcher.Backend))
	c.Snapshot.Backend = strings.ToLower(strings.TrimSpace(c.Snapshot.Backend))
	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(c.Upstream.BaseURL), "/")
	c.Upstream.CDNURL = strings.TrimRight(strings.TrimSpace(c.Upstream.CDNURL), "/")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be > 0")
	}
	if err := validateBaseURL("upstream.base_url", c.Upstream.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("upstream.cdn_url", c.Upstream.CDNURL); err != nil {
		return err
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	switch c.Fetcher.Backend {
	case BackendColly, BackendTLS:
	case BackendHeadless:
		if c.Fetcher.Headless.MaxParallel <= 0 {
			return fmt.Errorf("fetcher.headless.max_parallel must be > 0 when the headless backend is selected")
		}
		if c.Fetcher.Headless.NavTimeoutSec <= 0 {
			return fmt.Errorf("fetcher.headless.nav_timeout_seconds must be > 0")
		}
	default:
		return fmt.Errorf("fetcher.backend %q is not one of colly, headless, tls", c.Fetcher.Backend)
	}
	if c.Snapshot.Enabled {
		switch c.Snapshot.Backend {
		case SnapshotMemory:
		case SnapshotLocal:
			if strings.TrimSpace(c.Snapshot.Dir) == "" {
				return fmt.Errorf("snapshot.dir must be set for the local snapshot backend")
			}
		case SnapshotGCS:
			if strings.TrimSpace(c.Snapshot.GCSBucket) == "" {
				return fmt.Errorf("snapshot.gcs_bucket must be set for the gcs snapshot backend")
			}
		default:
			return fmt.Errorf("snapshot.backend %q is not one of memory, local, gcs", c.Snapshot.Backend)
		}
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return nil
}

// Site converts the upstream section into the URL layout.
func (c Config) Site() goodshort.Site {
	return goodshort.Site{
		BaseURL:     c.Upstream.BaseURL,
		APIURL:      c.Upstream.APIURL,
		CDNURL:      c.Upstream.CDNURL,
		Referer:     c.Upstream.Referer,
		DefaultLang: c.Upstream.DefaultLang,
	}
}

// RequestTimeout bounds one inbound request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// FetchTimeout bounds one outbound request.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// NavTimeout bounds one headless navigation.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Fetcher.Headless.NavTimeoutSec) * time.Second
}
