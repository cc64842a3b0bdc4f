// Package handler exposes the proxy as a single serverless request handler.
// The platform calls Handler for every request; services are built on the
// first call from the environment and reused afterwards.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/app"
	"github.com/JakeFAU/goodshort-api/internal/config"
	"github.com/JakeFAU/goodshort-api/internal/logging"
)

var (
	once    sync.Once
	core    http.Handler
	initErr error
)

// Handler serves one request through the shared proxy handler.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		core, initErr = build(context.Background())
	})
	if initErr != nil {
		zap.L().Error("proxy init failed", zap.Error(initErr))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"Something broke!"}`))
		return
	}
	core.ServeHTTP(w, r)
}

func build(ctx context.Context) (http.Handler, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	return a.Handler(), nil
}
