package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var (
	videoURLPattern = regexp.MustCompile(`videoUrl["']?\s*:\s*["']([^"']+)["']`)
	m3u8Pattern     = regexp.MustCompile(`https://[^"']+\.m3u8`)

	playerSource = scrape.First(
		scrape.Attr("#video-player, .video-container", "data-src"),
		scrape.Attr("video", "src"),
	)
)

// Play reads the video sources of a player page. Scripts are scanned once in
// document order; the first match of each pattern is kept. When no script
// names a video URL, the player element attributes are used instead.
func Play(doc *goquery.Document, chapterID, bookID string) goodshort.PlaybackInfo {
	var videoURL, m3u8URL string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		if videoURL == "" && strings.Contains(body, "videoUrl") {
			if m := videoURLPattern.FindStringSubmatch(body); m != nil {
				videoURL = m[1]
			}
		}
		if m3u8URL == "" && strings.Contains(body, ".m3u8") {
			m3u8URL = m3u8Pattern.FindString(body)
		}
		return videoURL == "" || m3u8URL == ""
	})
	if videoURL == "" {
		videoURL = playerSource(doc.Selection)
	}
	return goodshort.PlaybackInfo{
		ChapterID: chapterID,
		BookID:    bookID,
		VideoURL:  videoURL,
		M3U8URL:   m3u8URL,
		Qualities: QualitiesFor(videoURL),
	}
}

// QualitiesFor derives the hd and full_hd variants by replacing the first
// "_sd" marker. URLs without the marker are returned unchanged.
func QualitiesFor(videoURL string) goodshort.Qualities {
	return goodshort.Qualities{
		SD:     videoURL,
		HD:     strings.Replace(videoURL, "_sd", "_hd", 1),
		FullHD: strings.Replace(videoURL, "_sd", "_fhd", 1),
	}
}
