package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/metrics"
)

// DefaultRequestTimeout bounds the handling of one inbound request.
const DefaultRequestTimeout = 60 * time.Second

// Catalog is the endpoint logic the server exposes.
type Catalog interface {
	Site() goodshort.Site
	NavChannels(ctx context.Context, lang string) ([]goodshort.Channel, error)
	Home(ctx context.Context, lang, channel string) (goodshort.HomeFeed, error)
	Search(ctx context.Context, lang, q string) ([]goodshort.SearchResult, error)
	Hot(ctx context.Context, lang string) ([]goodshort.HotDrama, error)
	Book(ctx context.Context, id, lang string) (goodshort.DramaDetail, error)
	Chapters(ctx context.Context, id, lang, token string) ([]goodshort.Chapter, error)
	Play(ctx context.Context, chapterID, bookID, lang string) (goodshort.PlaybackInfo, error)
	Stream(chapterID, bookID string) (goodshort.StreamInfo, error)
}

// Options tunes the server. Zero values use defaults.
type Options struct {
	RequestTimeout time.Duration
}

// Server wires HTTP handlers to the catalog.
type Server struct {
	router  chi.Router
	catalog Catalog
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(catalog Catalog, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	s := &Server{
		catalog: catalog,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(corsMiddleware)
	r.Use(timeoutMiddleware(opts.RequestTimeout))
	// Runs in the timed goroutine that also writes the route context.
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(s.logger, w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(s.logger, w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/api", s.docs)
	r.Get("/api/navChannel", s.navChannel)
	r.Get("/api/home", s.home)
	r.Get("/api/search", s.search)
	r.Get("/api/hot", s.hot)
	r.Get("/api/book/{id}", s.book)
	r.Get("/api/chapters/{id}", s.chapters)
	r.Get("/api/play/{chapterId}", s.play)
	r.Get("/api/m3u8/{chapterId}", s.m3u8)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}
