// Package api hosts the HTTP surface of the proxy. Notable routes:
//   - GET /api for the endpoint documentation.
//   - GET /api/{navChannel,home,search,hot} for listings.
//   - GET /api/book/{id}, /api/chapters/{id} for book pages.
//   - GET /api/play/{chapterId}, /api/m3u8/{chapterId} for playback sources.
//   - GET /healthz and /metrics for operators.
//
// Every response is JSON: {status:"success", ...} or {status:"error", message}.
package api
