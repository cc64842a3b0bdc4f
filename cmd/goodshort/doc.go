// Package main hosts the goodshort proxy binary.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes /api, one route per upstream page, /healthz and /metrics. Handlers
//     default the language, validate parameters and wrap records in the JSON envelopes clients expect.
//   - Fetch pipeline: internal/scrape sends browser-like headers through the configured backend (colly by default,
//     chromedp for rendered pages, tls-client when the edge fingerprints handshakes), decodes the body charset and
//     hands a goquery document to the extractor of the endpoint.
//   - Snapshots: when enabled, every fetched page is archived to memory, a local directory or a GCS bucket so
//     selector drift can be replayed against the exact HTML that produced an empty response.
//   - Configuration & plumbing: a .env file is loaded first, then Viper reads an optional YAML file and GOODSHORT_*
//     overrides; zap provides structured logging; Prometheus metrics are exported on /metrics.
//
// Commands:
//   - serve: listens on server.port (or PORT) and drains in-flight requests on SIGINT/SIGTERM.
//   - scrape <endpoint> [args]: runs one endpoint operation and prints the records as JSON, e.g.
//     goodshort scrape search "ceo" --lang en, or goodshort scrape play 123 --book 42.
//
// Quick checklist:
//   - Configure env vars: GOODSHORT_SERVER_PORT or PORT, GOODSHORT_UPSTREAM_BASE_URL, GOODSHORT_FETCHER_BACKEND,
//     GOODSHORT_HTTP_TIMEOUT_SECONDS, GOODSHORT_SNAPSHOT_ENABLED with GOODSHORT_SNAPSHOT_BACKEND and its dir or bucket.
//   - Run locally: go run ./cmd/goodshort serve --config config.yaml (or rely solely on env overrides).
package main
