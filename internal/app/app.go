// Package app assembles the long-lived services behind the proxy from a
// loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/api"
	"github.com/JakeFAU/goodshort-api/internal/catalog"
	"github.com/JakeFAU/goodshort-api/internal/config"
	collyfetcher "github.com/JakeFAU/goodshort-api/internal/fetcher/colly"
	headlessfetcher "github.com/JakeFAU/goodshort-api/internal/fetcher/headless"
	tlsfetcher "github.com/JakeFAU/goodshort-api/internal/fetcher/tls"
	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/logging"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
	"github.com/JakeFAU/goodshort-api/internal/snapshot"
	"github.com/JakeFAU/goodshort-api/internal/storage/gcs"
	"github.com/JakeFAU/goodshort-api/internal/storage/local"
	"github.com/JakeFAU/goodshort-api/internal/storage/memory"
)

// StorageClientFactory creates the GCS client used by the gcs snapshot store.
type StorageClientFactory func(ctx context.Context) (*storage.Client, error)

// DefaultStorageClientFactory uses application default credentials.
func DefaultStorageClientFactory(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

// Option customizes New.
type Option func(*options)

type options struct {
	storageClient StorageClientFactory
	fetcher       goodshort.Fetcher
}

// WithStorageClientFactory replaces the GCS client constructor.
func WithStorageClientFactory(f StorageClientFactory) Option {
	return func(o *options) {
		if f != nil {
			o.storageClient = f
		}
	}
}

// WithFetcher bypasses the configured fetcher backend.
func WithFetcher(f goodshort.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// App holds the services shared by the serve and scrape commands and the
// serverless handler.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	catalog *catalog.Service
	server  *api.Server
	closers []func() error
}

// New builds every service described by cfg. It fails fast when a backend
// cannot be initialized.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{storageClient: DefaultStorageClientFactory}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, logger: logger}

	fetcher := o.fetcher
	if fetcher == nil {
		f, closer, err := newFetcher(cfg)
		if err != nil {
			return nil, err
		}
		fetcher = f
		a.addCloser(closer)
	}

	recorder, err := a.newRecorder(ctx, o.storageClient)
	if err != nil {
		a.Close() //nolint:errcheck // already failing
		return nil, err
	}

	headers := scrape.Headers{
		UserAgent:      cfg.HTTP.UserAgent,
		Accept:         cfg.HTTP.Accept,
		AcceptLanguage: cfg.HTTP.AcceptLanguage,
	}
	pages := scrape.NewClient(fetcher, headers, recorder, logging.Named(logger, logging.ComponentScrape))
	a.catalog = catalog.NewService(pages, cfg.Site(), logging.Named(logger, logging.ComponentCatalog))
	a.server = api.NewServer(a.catalog, logging.Named(logger, logging.ComponentAPI), api.Options{
		RequestTimeout: cfg.RequestTimeout(),
	})

	logger.Info("application services ready",
		zap.String("fetcher", cfg.Fetcher.Backend),
		zap.Bool("snapshots", recorder != nil),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)
	return a, nil
}

// Handler returns the HTTP surface of the proxy.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Catalog exposes the endpoint operations directly.
func (a *App) Catalog() *catalog.Service {
	return a.catalog
}

// Config returns the configuration the services were built from.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the root logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Close releases backend resources in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) addCloser(fn func() error) {
	if fn != nil {
		a.closers = append(a.closers, fn)
	}
}

func newFetcher(cfg config.Config) (goodshort.Fetcher, func() error, error) {
	switch cfg.Fetcher.Backend {
	case config.BackendColly, "":
		return collyfetcher.New(collyfetcher.Config{Timeout: cfg.FetchTimeout()}), nil, nil
	case config.BackendTLS:
		f, err := tlsfetcher.New(tlsfetcher.Config{Timeout: cfg.FetchTimeout()})
		if err != nil {
			return nil, nil, fmt.Errorf("init tls fetcher: %w", err)
		}
		return f, nil, nil
	case config.BackendHeadless:
		f, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
			MaxParallel:       cfg.Fetcher.Headless.MaxParallel,
			NavigationTimeout: cfg.NavTimeout(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init headless fetcher: %w", err)
		}
		return f, func() error {
			f.Close()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetcher backend: %s", cfg.Fetcher.Backend)
	}
}

// newRecorder returns a nil interface when snapshots are disabled.
func (a *App) newRecorder(ctx context.Context, storageClient StorageClientFactory) (scrape.Recorder, error) {
	cfg := a.cfg.Snapshot
	if !cfg.Enabled {
		return nil, nil
	}

	var store goodshort.BlobStore
	switch cfg.Backend {
	case config.SnapshotMemory:
		store = memory.NewBlobStore()
	case config.SnapshotLocal:
		s, err := local.New(local.Config{BaseDir: cfg.Dir})
		if err != nil {
			return nil, fmt.Errorf("init local snapshot store: %w", err)
		}
		store = s
	case config.SnapshotGCS:
		client, err := storageClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("init gcs client: %w", err)
		}
		a.addCloser(client.Close)
		s, err := gcs.New(client, gcs.Config{Bucket: cfg.GCSBucket})
		if err != nil {
			return nil, fmt.Errorf("init gcs snapshot store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Backend)
	}

	a.logger.Info("snapshot recording enabled",
		zap.String("backend", cfg.Backend),
		zap.String("prefix", cfg.Prefix),
	)
	return snapshot.NewRecorder(store, cfg.Prefix, logging.Named(a.logger, logging.ComponentSnapshot)), nil
}
