package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/metrics"
)

// Browser-like request headers sent with every upstream fetch.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	DefaultAcceptLanguage = "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7"
)

// Recorder keeps a copy of fetched upstream pages.
type Recorder interface {
	Record(ctx context.Context, target goodshort.Target, body []byte)
}

// Headers configures the browser-like request headers.
type Headers struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
}

// DefaultHeaders returns the desktop browser header set.
func DefaultHeaders() Headers {
	return Headers{
		UserAgent:      DefaultUserAgent,
		Accept:         DefaultAccept,
		AcceptLanguage: DefaultAcceptLanguage,
	}
}

func (h Headers) header() http.Header {
	out := http.Header{}
	out.Set("User-Agent", valueOr(h.UserAgent, DefaultUserAgent))
	out.Set("Accept", valueOr(h.Accept, DefaultAccept))
	out.Set("Accept-Language", valueOr(h.AcceptLanguage, DefaultAcceptLanguage))
	return out
}

// Client fetches upstream pages and parses them into documents.
type Client struct {
	fetcher  goodshort.Fetcher
	headers  Headers
	recorder Recorder
	logger   *zap.Logger
}

// NewClient wires a Client. recorder may be nil.
func NewClient(fetcher goodshort.Fetcher, headers Headers, recorder Recorder, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		fetcher:  fetcher,
		headers:  headers,
		recorder: recorder,
		logger:   logger,
	}
}

// FetchPage issues one GET for target and returns the parsed document. Every
// failure, whether transport, status or parse, is a *goodshort.FetchError.
func (c *Client) FetchPage(ctx context.Context, target goodshort.Target) (*goquery.Document, error) {
	start := time.Now()
	resp, err := c.fetcher.Fetch(ctx, goodshort.FetchRequest{
		URL:     target.URL,
		Headers: c.headers.header(),
	})
	if err != nil {
		return nil, c.fail(target, 0, start, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.fail(target, resp.StatusCode, start, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	contentType := ""
	if resp.Headers != nil {
		contentType = resp.Headers.Get("Content-Type")
	}
	doc, err := ParseDocument(resp.Body, contentType)
	if err != nil {
		return nil, c.fail(target, resp.StatusCode, start, err)
	}

	metrics.ObserveUpstreamFetch(target.Endpoint, "ok", len(resp.Body), time.Since(start))
	c.logger.Debug("upstream page fetched",
		zap.String("endpoint", target.Endpoint),
		zap.String("url", target.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.Bool("headless", resp.UsedHeadless),
	)
	if c.recorder != nil {
		c.recorder.Record(ctx, target, resp.Body)
	}
	return doc, nil
}

func (c *Client) fail(target goodshort.Target, status int, start time.Time, cause error) error {
	metrics.ObserveUpstreamFetch(target.Endpoint, "error", 0, time.Since(start))
	c.logger.Warn("upstream fetch failed",
		zap.String("endpoint", target.Endpoint),
		zap.String("url", target.URL),
		zap.Int("status", status),
		zap.Error(cause),
	)
	return &goodshort.FetchError{URL: target.URL, StatusCode: status, Err: cause}
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
