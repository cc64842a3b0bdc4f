// Package snapshot archives raw upstream pages so selector drift can be
// diagnosed after the fact. Archived pages are never read back by the proxy.
package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/metrics"
)

// DefaultPrefix roots every snapshot path.
const DefaultPrefix = "snapshots"

const (
	timeLayout  = "20060102T150405Z"
	hashLen     = 12
	contentType = "text/html; charset=utf-8"
)

// Recorder writes one blob per successful upstream fetch.
type Recorder struct {
	store  goodshort.BlobStore
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source used for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder wires a Recorder. An empty prefix uses DefaultPrefix.
func NewRecorder(store goodshort.BlobStore, prefix string, logger *zap.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	r := &Recorder{
		store:  store,
		prefix: prefix,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path names the blob for body fetched for endpoint at t.
func (r *Recorder) Path(endpoint string, t time.Time, body []byte) string {
	sum := sha256.Sum256(body)
	if endpoint == "" {
		endpoint = "unknown"
	}
	name := t.UTC().Format(timeLayout) + "-" + hex.EncodeToString(sum[:])[:hashLen] + ".html"
	return path.Join(r.prefix, endpoint, name)
}

// Record stores body. Failures are logged and counted, never returned.
func (r *Recorder) Record(ctx context.Context, target goodshort.Target, body []byte) {
	p := r.Path(target.Endpoint, r.now(), body)
	uri, err := r.store.PutObject(ctx, p, contentType, bytes.NewReader(body))
	if err != nil {
		metrics.ObserveSnapshotWrite("error")
		r.logger.Warn("snapshot write failed",
			zap.String("endpoint", target.Endpoint),
			zap.String("url", target.URL),
			zap.String("path", p),
			zap.Error(err),
		)
		return
	}
	metrics.ObserveSnapshotWrite("ok")
	r.logger.Debug("snapshot stored",
		zap.String("endpoint", target.Endpoint),
		zap.String("uri", uri),
	)
}
