package scrape

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

func TestClientFetchPageSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{resp: goodshort.FetchResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte(`<h1>Hello</h1>`),
	}}
	client := NewClient(fetcher, DefaultHeaders(), nil, zap.NewNop())

	doc, err := client.FetchPage(context.Background(), goodshort.Target{Endpoint: "book", URL: "https://up/book/1"})
	require.NoError(t, err)
	require.Equal(t, "Hello", doc.Find("h1").Text())

	got := fetcher.lastRequest()
	require.Equal(t, "https://up/book/1", got.URL)
	require.Equal(t, DefaultUserAgent, got.Headers.Get("User-Agent"))
	require.Equal(t, DefaultAccept, got.Headers.Get("Accept"))
	require.Equal(t, DefaultAcceptLanguage, got.Headers.Get("Accept-Language"))
}

func TestClientFetchPageHeaderOverrides(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{resp: goodshort.FetchResponse{StatusCode: http.StatusOK}}
	client := NewClient(fetcher, Headers{UserAgent: "custom-agent"}, nil, nil)

	_, err := client.FetchPage(context.Background(), goodshort.Target{URL: "https://up"})
	require.NoError(t, err)
	require.Equal(t, "custom-agent", fetcher.lastRequest().Headers.Get("User-Agent"))
	require.Equal(t, DefaultAccept, fetcher.lastRequest().Headers.Get("Accept"))
}

func TestClientFetchPageCollapsesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       goodshort.FetchResponse
		err        error
		wantStatus int
	}{
		{name: "transport", err: errors.New("dial tcp: i/o timeout")},
		{name: "not found", resp: goodshort.FetchResponse{StatusCode: http.StatusNotFound}, wantStatus: http.StatusNotFound},
		{name: "server error", resp: goodshort.FetchResponse{StatusCode: http.StatusBadGateway}, wantStatus: http.StatusBadGateway},
		{name: "redirect leftover", resp: goodshort.FetchResponse{StatusCode: http.StatusFound}, wantStatus: http.StatusFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := &stubRecorder{}
			client := NewClient(&stubFetcher{resp: tt.resp, err: tt.err}, DefaultHeaders(), recorder, zap.NewNop())
			_, err := client.FetchPage(context.Background(), goodshort.Target{Endpoint: "hot", URL: "https://up/hot"})

			var fe *goodshort.FetchError
			require.ErrorAs(t, err, &fe)
			require.ErrorIs(t, err, goodshort.ErrFetchFailed)
			require.Equal(t, "https://up/hot", fe.URL)
			require.Equal(t, tt.wantStatus, fe.StatusCode)
			require.Zero(t, recorder.count())
		})
	}
}

func TestClientFetchPageRecordsSnapshot(t *testing.T) {
	t.Parallel()

	recorder := &stubRecorder{}
	fetcher := &stubFetcher{resp: goodshort.FetchResponse{StatusCode: http.StatusOK, Body: []byte("<p>x</p>")}}
	client := NewClient(fetcher, DefaultHeaders(), recorder, zap.NewNop())

	_, err := client.FetchPage(context.Background(), goodshort.Target{Endpoint: "play", URL: "https://up/play/1"})
	require.NoError(t, err)
	require.Equal(t, 1, recorder.count())
	require.Equal(t, "play", recorder.targets[0].Endpoint)
	require.Equal(t, "<p>x</p>", string(recorder.bodies[0]))
}

type stubFetcher struct {
	mu       sync.Mutex
	resp     goodshort.FetchResponse
	err      error
	requests []goodshort.FetchRequest
}

func (s *stubFetcher) Fetch(_ context.Context, req goodshort.FetchRequest) (goodshort.FetchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.resp, s.err
}

func (s *stubFetcher) lastRequest() goodshort.FetchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

type stubRecorder struct {
	mu      sync.Mutex
	targets []goodshort.Target
	bodies  [][]byte
}

func (r *stubRecorder) Record(_ context.Context, target goodshort.Target, body []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
	r.bodies = append(r.bodies, body)
}

func (r *stubRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}
