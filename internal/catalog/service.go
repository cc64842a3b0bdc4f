// Package catalog implements one operation per proxy endpoint: default the
// language, validate parameters, fetch the upstream page, and run its
// extractor. It has no knowledge of HTTP.
package catalog

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/extract"
	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/metrics"
)

// Validation messages returned to clients.
const (
	MsgQueryRequired  = "Query required"
	MsgBookIDRequired = "bookId required"
)

// PageFetcher retrieves and parses one upstream page.
type PageFetcher interface {
	FetchPage(ctx context.Context, target goodshort.Target) (*goquery.Document, error)
}

// Service answers catalog queries by scraping the upstream site.
type Service struct {
	pages  PageFetcher
	site   goodshort.Site
	logger *zap.Logger
}

// NewService wires a Service.
func NewService(pages PageFetcher, site goodshort.Site, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{pages: pages, site: site, logger: logger}
}

// Site returns the upstream layout the service scrapes.
func (s *Service) Site() goodshort.Site {
	return s.site
}

// NavChannels lists the navigation channels.
func (s *Service) NavChannels(ctx context.Context, lang string) ([]goodshort.Channel, error) {
	target := goodshort.Target{Endpoint: goodshort.EndpointNavChannel, URL: s.site.NavChannelURL(s.site.Lang(lang))}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) ([]goodshort.Channel, int) {
		out := extract.Channels(doc)
		return out, len(out)
	})
}

// Home lists the landing page, or one channel's page.
func (s *Service) Home(ctx context.Context, lang, channel string) (goodshort.HomeFeed, error) {
	target := goodshort.Target{Endpoint: goodshort.EndpointHome, URL: s.site.HomeURL(s.site.Lang(lang), channel)}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) (goodshort.HomeFeed, int) {
		feed := extract.Home(doc)
		return feed, len(feed.All)
	})
}

// Search runs a site search. q is required.
func (s *Service) Search(ctx context.Context, lang, q string) ([]goodshort.SearchResult, error) {
	if q == "" {
		return nil, goodshort.Validation(MsgQueryRequired)
	}
	target := goodshort.Target{Endpoint: goodshort.EndpointSearch, URL: s.site.SearchURL(s.site.Lang(lang), q)}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) ([]goodshort.SearchResult, int) {
		out := extract.Search(doc)
		return out, len(out)
	})
}

// Hot lists the popular dramas in rank order.
func (s *Service) Hot(ctx context.Context, lang string) ([]goodshort.HotDrama, error) {
	target := goodshort.Target{Endpoint: goodshort.EndpointHot, URL: s.site.HotURL(s.site.Lang(lang))}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) ([]goodshort.HotDrama, int) {
		out := extract.Hot(doc)
		return out, len(out)
	})
}

// Book reads a drama's detail page.
func (s *Service) Book(ctx context.Context, id, lang string) (goodshort.DramaDetail, error) {
	target := goodshort.Target{Endpoint: goodshort.EndpointBook, URL: s.site.BookURL(id, s.site.Lang(lang))}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) (goodshort.DramaDetail, int) {
		return extract.Detail(doc, id), 1
	})
}

// Chapters lists a book's episodes. token is forwarded as-is.
func (s *Service) Chapters(ctx context.Context, id, lang, token string) ([]goodshort.Chapter, error) {
	target := goodshort.Target{Endpoint: goodshort.EndpointChapters, URL: s.site.ChaptersURL(id, s.site.Lang(lang), token)}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) ([]goodshort.Chapter, int) {
		out := extract.Chapters(doc)
		return out, len(out)
	})
}

// Play reads the video sources of a chapter. bookID is required.
func (s *Service) Play(ctx context.Context, chapterID, bookID, lang string) (goodshort.PlaybackInfo, error) {
	if bookID == "" {
		return goodshort.PlaybackInfo{}, goodshort.Validation(MsgBookIDRequired)
	}
	target := goodshort.Target{Endpoint: goodshort.EndpointPlay, URL: s.site.PlayURL(chapterID, bookID, s.site.Lang(lang))}
	return scrapePage(ctx, s, target, func(doc *goquery.Document) (goodshort.PlaybackInfo, int) {
		info := extract.Play(doc, chapterID, bookID)
		if info.VideoURL == "" && info.M3U8URL == "" {
			return info, 0
		}
		return info, 1
	})
}

// Stream synthesizes the CDN playlist location of a chapter without contacting
// the upstream site. bookID is required.
func (s *Service) Stream(chapterID, bookID string) (goodshort.StreamInfo, error) {
	if bookID == "" {
		return goodshort.StreamInfo{}, goodshort.Validation(MsgBookIDRequired)
	}
	return goodshort.StreamInfo{
		StreamURL: s.site.StreamURL(bookID, chapterID),
		Headers:   s.site.StreamHeaders(),
	}, nil
}

// scrapePage fetches target and runs fn over the document. A panicking
// extractor is reported as an UpstreamError like a failed fetch.
func scrapePage[T any](ctx context.Context, s *Service, target goodshort.Target, fn func(*goquery.Document) (T, int)) (out T, err error) {
	doc, err := s.pages.FetchPage(ctx, target)
	if err != nil {
		return out, &goodshort.UpstreamError{Endpoint: target.Endpoint, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extractor panicked",
				zap.String("endpoint", target.Endpoint),
				zap.String("url", target.URL),
				zap.Any("panic", r),
			)
			var zero T
			out = zero
			err = &goodshort.UpstreamError{Endpoint: target.Endpoint, Err: fmt.Errorf("extract: %v", r)}
		}
	}()

	out, n := fn(doc)
	metrics.ObserveExtracted(target.Endpoint, n)
	if n == 0 {
		// Usually a sign the upstream markup changed.
		s.logger.Info("no records extracted",
			zap.String("endpoint", target.Endpoint),
			zap.String("url", target.URL),
		)
	}
	return out, nil
}
