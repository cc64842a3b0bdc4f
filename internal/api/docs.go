package api

import (
	"net/http"
	"strings"
)

type endpointDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Desc   string `json:"desc"`
}

// endpointDocs keeps the documented endpoints in a fixed order.
type endpointDocs struct {
	NavChannel endpointDoc `json:"navChannel"`
	Home       endpointDoc `json:"home"`
	Search     endpointDoc `json:"search"`
	Hot        endpointDoc `json:"hot"`
	BookDetail endpointDoc `json:"bookDetail"`
	Chapters   endpointDoc `json:"chapters"`
	Play       endpointDoc `json:"play"`
	M3U8       endpointDoc `json:"m3u8"`
}

type upstreamDoc struct {
	Site string `json:"site"`
	API  string `json:"api"`
}

type apiDoc struct {
	Name        string       `json:"name"`
	Version     string       `json:"version"`
	Description string       `json:"description"`
	BaseURL     string       `json:"baseUrl"`
	Endpoints   endpointDocs `json:"endpoints"`
	Example     string       `json:"example"`
	Upstream    upstreamDoc  `json:"upstream"`
}

var documentedEndpoints = endpointDocs{
	NavChannel: endpointDoc{Method: http.MethodGet, Path: "/navChannel?lang=id", Desc: "Get navigation channels"},
	Home:       endpointDoc{Method: http.MethodGet, Path: "/home?lang=id&channel=", Desc: "Get homepage content"},
	Search:     endpointDoc{Method: http.MethodGet, Path: "/search?lang=id&q=query", Desc: "Search dramas"},
	Hot:        endpointDoc{Method: http.MethodGet, Path: "/hot?lang=id", Desc: "Get popular dramas"},
	BookDetail: endpointDoc{Method: http.MethodGet, Path: "/book/:id?lang=id", Desc: "Get drama details"},
	Chapters:   endpointDoc{Method: http.MethodGet, Path: "/chapters/:id?lang=id&token=", Desc: "Get episode list"},
	Play:       endpointDoc{Method: http.MethodGet, Path: "/play/:chapterId?bookId=&lang=id", Desc: "Get video URL"},
	M3U8:       endpointDoc{Method: http.MethodGet, Path: "/m3u8/:chapterId?bookId=", Desc: "Get HLS stream"},
}

func (s *Server) docs(w http.ResponseWriter, r *http.Request) {
	origin := requestOrigin(r)
	site := s.catalog.Site()
	writeJSON(s.logger, w, http.StatusOK, apiDoc{
		Name:        "GoodShort API",
		Version:     "1.0.0",
		Description: "Unofficial API for GoodShort drama streaming",
		BaseURL:     origin + "/api",
		Endpoints:   documentedEndpoints,
		Example:     origin + "/api/hot?lang=id",
		Upstream:    upstreamDoc{Site: site.BaseURL, API: site.APIURL},
	})
}

// requestOrigin rebuilds scheme://host as the client saw it.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		proto, _, _ = strings.Cut(proto, ",")
		scheme = strings.ToLower(strings.TrimSpace(proto))
	}
	return scheme + "://" + r.Host
}
