package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var hotSelectors = []string{".hot-item", ".popular-item", ".drama-item"}

var (
	hotID = scrape.First(
		scrape.OwnAttr("data-book-id"),
		scrape.Transform(scrape.Attr("a[href]", "href"), scrape.LastPathSegment),
	)
	hotTitle  = scrape.Text(".title")
	hotCover  = scrape.Attr("img", "src")
	hotViews  = scrape.First(scrape.Text(".views"), scrape.Text(".play-count"))
	hotRating = scrape.Text(".rating")
)

// Hot reads the popular list. Rank is the 1-based document position.
func Hot(doc *goquery.Document) []goodshort.HotDrama {
	nodes := scrape.Select(doc.Selection, hotSelectors...)
	out := make([]goodshort.HotDrama, 0, nodes.Length())
	nodes.Each(func(i int, s *goquery.Selection) {
		out = append(out, goodshort.HotDrama{
			Rank:   i + 1,
			ID:     hotID(s),
			Title:  hotTitle(s),
			Cover:  hotCover(s),
			Views:  hotViews(s),
			Rating: hotRating(s),
		})
	})
	return out
}
