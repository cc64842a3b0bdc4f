package collyfetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

func TestFetcherFetchesPage(t *testing.T) {
	t.Parallel()

	seen := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>ok</h1>"))
	}))
	t.Cleanup(srv.Close)

	f := New(Config{Timeout: 2 * time.Second})
	resp, err := f.Fetch(context.Background(), goodshort.FetchRequest{
		URL: srv.URL + "/hot?lang=id",
		Headers: http.Header{
			"User-Agent":      {"browser-ua"},
			"Accept-Language": {"id-ID"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "<h1>ok</h1>", string(resp.Body))
	require.Equal(t, "text/html; charset=utf-8", resp.Headers.Get("Content-Type"))
	got := <-seen
	require.Equal(t, []string{"browser-ua"}, got.Values("User-Agent"))
	require.Equal(t, []string{"id-ID"}, got.Values("Accept-Language"))
}

func TestFetcherTranscodesDeclaredCharset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte("<p>Caf\xe9</p>"))
	}))
	t.Cleanup(srv.Close)

	resp, err := New(Config{}).Fetch(context.Background(), goodshort.FetchRequest{URL: srv.URL})
	require.NoError(t, err)
	require.Equal(t, "<p>Café</p>", string(resp.Body))
	require.Equal(t, "text/html; charset=utf-8", resp.Headers.Get("Content-Type"))
}

func TestMarkTranscoded(t *testing.T) {
	t.Parallel()

	h := http.Header{"Content-Type": {"text/html"}}
	markTranscoded(h)
	require.Equal(t, "text/html", h.Get("Content-Type"))

	h = http.Header{"Content-Type": {"text/html; charset=windows-1252"}}
	markTranscoded(h)
	require.Equal(t, "text/html; charset=utf-8", h.Get("Content-Type"))

	h = http.Header{}
	markTranscoded(h)
	require.Empty(t, h.Get("Content-Type"))
}

func TestFetcherRevisitsSameURL(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("again"))
	}))
	t.Cleanup(srv.Close)

	f := New(Config{})
	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), goodshort.FetchRequest{URL: srv.URL})
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), hits.Load())
}

func TestFetcherReportsErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	t.Cleanup(srv.Close)

	resp, err := New(Config{}).Fetch(context.Background(), goodshort.FetchRequest{URL: srv.URL})
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFetcherHonorsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(Config{}).Fetch(ctx, goodshort.FetchRequest{URL: srv.URL})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfigureCollectorHooks(t *testing.T) {
	t.Parallel()

	f := New(Config{})
	req := goodshort.FetchRequest{
		URL:     "https://example.com",
		Headers: http.Header{"X-Trace": {"yes"}},
	}
	var result goodshort.FetchResponse
	var fetchErr error

	hooks := &stubHooks{}
	f.configureCollectorHooks(hooks, req, time.Unix(0, 0), &result, &fetchErr)
	require.NotNil(t, hooks.onRequest)
	require.NotNil(t, hooks.onResponse)
	require.NotNil(t, hooks.onError)

	collyReq := &colly.Request{Headers: &http.Header{"X-Trace": {"stale"}}}
	hooks.onRequest(collyReq)
	require.Equal(t, []string{"yes"}, collyReq.Headers.Values("X-Trace"))

	hooks.onResponse(&colly.Response{
		StatusCode: http.StatusCreated,
		Body:       []byte("body"),
		Headers:    &http.Header{"X-Resp": {"ok"}},
		Request:    &colly.Request{URL: mustParseURL(t, "https://example.com")},
	})
	require.Equal(t, http.StatusCreated, result.StatusCode)
	require.Equal(t, "body", string(result.Body))
	require.Equal(t, "ok", result.Headers.Get("X-Resp"))
	require.False(t, result.UsedHeadless)

	hooks.onError(nil, errors.New("boom"))
	require.EqualError(t, fetchErr, "boom")
}

func TestCopyHeadersHandlesNil(t *testing.T) {
	t.Parallel()

	collyReq := &colly.Request{Headers: &http.Header{}}
	copyHeaders(nil, collyReq)
	require.Empty(t, *collyReq.Headers)
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

type stubHooks struct {
	onRequest  colly.RequestCallback
	onResponse colly.ResponseCallback
	onError    colly.ErrorCallback
}

func (s *stubHooks) OnRequest(cb colly.RequestCallback) {
	s.onRequest = cb
}

func (s *stubHooks) OnResponse(cb colly.ResponseCallback) {
	s.onResponse = cb
}

func (s *stubHooks) OnError(cb colly.ErrorCallback) {
	s.onError = cb
}
