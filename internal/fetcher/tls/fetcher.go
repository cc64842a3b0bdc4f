// Package tlsfetcher implements goodshort.Fetcher with a browser TLS
// fingerprint, for upstream edges that reject Go's default handshake.
package tlsfetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

// Defaults applied by New.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxBodySize = 10 << 20
)

// headerOrder is the order Chrome sends its navigation headers in.
var headerOrder = []string{
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
}

// Config controls the TLS client.
type Config struct {
	Timeout     time.Duration
	MaxBodySize int64
}

// Fetcher implements goodshort.Fetcher using bogdanfinn/tls-client.
type Fetcher struct {
	cfg    Config
	client tls_client.HttpClient
}

// New builds a Fetcher presenting a Chrome 120 ClientHello.
func New(cfg Config) (*Fetcher, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(cfg.Timeout/time.Second)),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	)
	if err != nil {
		return nil, fmt.Errorf("build tls client: %w", err)
	}
	return &Fetcher{cfg: cfg, client: client}, nil
}

// Fetch executes a single HTTP GET.
func (f *Fetcher) Fetch(ctx context.Context, request goodshort.FetchRequest) (goodshort.FetchResponse, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, request.URL, nil)
	if err != nil {
		return goodshort.FetchResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header = toFHTTPHeader(request.Headers)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return goodshort.FetchResponse{}, fmt.Errorf("tls fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize))
	if err != nil {
		return goodshort.FetchResponse{}, fmt.Errorf("read body: %w", err)
	}

	finalURL := request.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return goodshort.FetchResponse{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Headers:    fromFHTTPHeader(resp.Header),
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}

func toFHTTPHeader(h http.Header) fhttp.Header {
	out := fhttp.Header{}
	for key, values := range h {
		out[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
	order := make([]string, 0, len(headerOrder)+len(h))
	order = append(order, headerOrder...)
	for key := range h {
		lower := strings.ToLower(key)
		if !contains(order, lower) {
			order = append(order, lower)
		}
	}
	out[fhttp.HeaderOrderKey] = order
	return out
}

func fromFHTTPHeader(h fhttp.Header) http.Header {
	out := http.Header{}
	for key, values := range h {
		if key == fhttp.HeaderOrderKey || key == fhttp.PHeaderOrderKey {
			continue
		}
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
