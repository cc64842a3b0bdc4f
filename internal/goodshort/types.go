// Package goodshort defines the records, errors, and upstream URL layout shared
// across the scraping proxy.
package goodshort

import (
	"net/http"
	"time"
)

// Channel is one navigation entry of the upstream site.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DramaSummary is one listing card on the home or channel page.
type DramaSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	Description string `json:"description"`
	Rating      string `json:"rating"`
	Genre       string `json:"genre"`
}

// SearchResult is one listing card on the search results page.
type SearchResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Cover         string `json:"cover"`
	Description   string `json:"description"`
	TotalEpisodes string `json:"totalEpisodes"`
}

// HotDrama is one entry of the popular list. Rank follows document order.
type HotDrama struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Cover  string `json:"cover"`
	Views  string `json:"views"`
	Rating string `json:"rating"`
}

// HomeFeed is the positional partition of the home listing.
type HomeFeed struct {
	Banners  []DramaSummary `json:"banners"`
	Trending []DramaSummary `json:"trending"`
	Latest   []DramaSummary `json:"latest"`
	All      []DramaSummary `json:"all"`
}

// DramaDetail is read from singleton nodes of a book page.
type DramaDetail struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Cover         string   `json:"cover"`
	Rating        string   `json:"rating"`
	Genre         []string `json:"genre"`
	TotalEpisodes string   `json:"totalEpisodes"`
	Cast          string   `json:"cast"`
	Status        string   `json:"status"`
	ReleaseDate   string   `json:"releaseDate"`
}

// Chapter is one episode entry of a book.
type Chapter struct {
	ChapterID string `json:"chapterId"`
	Title     string `json:"title"`
	Number    string `json:"number"`
	Duration  string `json:"duration"`
	IsLocked  bool   `json:"isLocked"`
	Thumbnail string `json:"thumbnail"`
}

// Qualities holds the derived per-quality variants of a video URL.
type Qualities struct {
	SD     string `json:"sd"`
	HD     string `json:"hd"`
	FullHD string `json:"full_hd"`
}

// PlaybackInfo is what the play page reveals about a chapter's video.
type PlaybackInfo struct {
	ChapterID string    `json:"chapterId"`
	BookID    string    `json:"bookId"`
	VideoURL  string    `json:"videoUrl"`
	M3U8URL   string    `json:"m3u8Url"`
	Qualities Qualities `json:"qualities"`
}

// StreamInfo is a synthesized CDN playlist location plus the headers a player
// should send with it.
type StreamInfo struct {
	StreamURL string            `json:"streamUrl"`
	Headers   map[string]string `json:"headers"`
}

// Target names one upstream page fetch.
type Target struct {
	Endpoint string
	URL      string
}

// FetchRequest captures everything needed to fetch an upstream URL.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL          string
	StatusCode   int
	Headers      http.Header
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}
