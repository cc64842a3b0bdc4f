package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

// Positional slices of the home listing.
const (
	trendingSize = 10
	latestSize   = 10
)

var dramaSelectors = []string{".drama-item", ".book-item", "[data-book-id]"}

var (
	dramaID = scrape.First(
		scrape.OwnAttr("data-book-id"),
		scrape.Transform(scrape.Attr("a[href]", "href"), scrape.LastPathSegment),
	)
	dramaTitle = scrape.First(scrape.Text(".title"), scrape.Text("h3"), scrape.Text("h2"))
	dramaCover = scrape.First(scrape.Attr("img", "src"), scrape.Attr("img", "data-src"))
	dramaDesc  = scrape.First(scrape.Text(".desc"), scrape.Text(".description"))
	dramaScore = scrape.First(scrape.Text(".rating"), scrape.Text(".score"))
	dramaGenre = scrape.First(scrape.Text(".genre"), scrape.Text(".tag"))
)

// Dramas reads every listing card of a home or channel page in document order.
func Dramas(doc *goquery.Document) []goodshort.DramaSummary {
	nodes := scrape.Select(doc.Selection, dramaSelectors...)
	out := make([]goodshort.DramaSummary, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goodshort.DramaSummary{
			ID:          dramaID(s),
			Title:       dramaTitle(s),
			Cover:       dramaCover(s),
			Description: dramaDesc(s),
			Rating:      dramaScore(s),
			Genre:       dramaGenre(s),
		})
	})
	return out
}

// PartitionHome splits a listing by position: the first ten are trending, the
// next ten latest, and all keeps everything. Banners are never populated.
func PartitionHome(dramas []goodshort.DramaSummary) goodshort.HomeFeed {
	if dramas == nil {
		dramas = []goodshort.DramaSummary{}
	}
	trendingEnd := min(trendingSize, len(dramas))
	latestEnd := min(trendingSize+latestSize, len(dramas))
	return goodshort.HomeFeed{
		Banners:  []goodshort.DramaSummary{},
		Trending: dramas[:trendingEnd:trendingEnd],
		Latest:   dramas[trendingEnd:latestEnd:latestEnd],
		All:      dramas,
	}
}

// Home reads and partitions the listing of a home or channel page.
func Home(doc *goquery.Document) goodshort.HomeFeed {
	return PartitionHome(Dramas(doc))
}
