package goodshort

import (
	"net/url"
	"strings"
)

// Defaults for the upstream layout.
const (
	DefaultBaseURL = "https://www.goodshort.com/id"
	DefaultAPIURL  = "https://api.goodshort.com"
	DefaultCDNURL  = "https://cdn.goodshort.com/streams"
	DefaultReferer = "https://www.goodshort.com/"
	DefaultLang    = "id"

	// PlayerUserAgent is advertised to downstream players alongside stream URLs.
	PlayerUserAgent = "Mozilla/5.0"
)

// Endpoint labels used for metrics, logs and snapshots.
const (
	EndpointNavChannel = "navChannel"
	EndpointHome       = "home"
	EndpointSearch     = "search"
	EndpointHot        = "hot"
	EndpointBook       = "book"
	EndpointChapters   = "chapters"
	EndpointPlay       = "play"
	EndpointStream     = "m3u8"
)

// Site describes where the upstream pages live. Zero fields fall back to the
// package defaults.
type Site struct {
	BaseURL     string
	APIURL      string
	CDNURL      string
	Referer     string
	DefaultLang string
}

// DefaultSite returns the production upstream layout.
func DefaultSite() Site {
	return Site{
		BaseURL:     DefaultBaseURL,
		APIURL:      DefaultAPIURL,
		CDNURL:      DefaultCDNURL,
		Referer:     DefaultReferer,
		DefaultLang: DefaultLang,
	}
}

// Lang applies the default language to an empty value.
func (s Site) Lang(lang string) string {
	if lang != "" {
		return lang
	}
	if s.DefaultLang != "" {
		return s.DefaultLang
	}
	return DefaultLang
}

func (s Site) base() string {
	return strings.TrimRight(valueOr(s.BaseURL, DefaultBaseURL), "/")
}

// NavChannelURL is the page carrying the navigation menu.
func (s Site) NavChannelURL(lang string) string {
	return s.base() + "?lang=" + url.QueryEscape(lang)
}

// HomeURL is the landing page, or a channel page when channel is set.
func (s Site) HomeURL(lang, channel string) string {
	if channel == "" {
		return s.NavChannelURL(lang)
	}
	return s.base() + "/channel/" + url.PathEscape(channel) + "?lang=" + url.QueryEscape(lang)
}

// SearchURL is the search results page for q.
func (s Site) SearchURL(lang, q string) string {
	return s.base() + "/search?q=" + url.QueryEscape(q) + "&lang=" + url.QueryEscape(lang)
}

// HotURL is the popular list page.
func (s Site) HotURL(lang string) string {
	return s.base() + "/hot?lang=" + url.QueryEscape(lang)
}

// BookURL is the detail page of a book.
func (s Site) BookURL(id, lang string) string {
	return s.base() + "/book/" + url.PathEscape(id) + "?lang=" + url.QueryEscape(lang)
}

// ChaptersURL is the episode list of a book. The token is opaque and appended
// verbatim, even when empty.
func (s Site) ChaptersURL(id, lang, token string) string {
	return s.base() + "/book/" + url.PathEscape(id) + "/chapters?lang=" + url.QueryEscape(lang) +
		"&token=" + token
}

// PlayURL is the player page of a chapter.
func (s Site) PlayURL(chapterID, bookID, lang string) string {
	return s.base() + "/play/" + url.PathEscape(chapterID) + "?bookId=" + url.QueryEscape(bookID) +
		"&lang=" + url.QueryEscape(lang)
}

// StreamURL is the predictable CDN playlist of a chapter. No request is made.
func (s Site) StreamURL(bookID, chapterID string) string {
	cdn := strings.TrimRight(valueOr(s.CDNURL, DefaultCDNURL), "/")
	return cdn + "/" + bookID + "/" + chapterID + "/playlist.m3u8"
}

// StreamHeaders are the headers a player needs to pull the CDN playlist.
func (s Site) StreamHeaders() map[string]string {
	return map[string]string{
		"Referer":    valueOr(s.Referer, DefaultReferer),
		"User-Agent": PlayerUserAgent,
	}
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
