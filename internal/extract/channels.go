package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var channelSelectors = []string{".nav-channel", ".category-item", "[data-channel]"}

var (
	channelID = scrape.First(
		scrape.OwnAttr("data-id"),
		scrape.Transform(scrape.OwnAttr("href"), scrape.LastPathSegment),
	)
	channelName = scrape.Text("")
	channelURL  = scrape.OwnAttr("href")
)

// Channels reads the navigation menu.
func Channels(doc *goquery.Document) []goodshort.Channel {
	nodes := scrape.Select(doc.Selection, channelSelectors...)
	out := make([]goodshort.Channel, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goodshort.Channel{
			ID:   channelID(s),
			Name: channelName(s),
			URL:  channelURL(s),
		})
	})
	return out
}
