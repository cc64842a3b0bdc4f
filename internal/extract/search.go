package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var searchSelectors = []string{".search-item", ".drama-item"}

var (
	searchID = scrape.First(
		scrape.OwnAttr("data-id"),
		scrape.Transform(scrape.Attr("a[href]", "href"), func(link string) string {
			return scrape.SegmentAfter(link, "/book/")
		}),
	)
	searchTitle    = scrape.First(scrape.Text(".title"), scrape.Text("h3"))
	searchCover    = scrape.Attr("img", "src")
	searchDesc     = scrape.Text(".desc")
	searchEpisodes = scrape.First(scrape.Text(".episodes"), scrape.Text(".chapter-count"))
)

// Search reads the result cards of a search page.
func Search(doc *goquery.Document) []goodshort.SearchResult {
	nodes := scrape.Select(doc.Selection, searchSelectors...)
	out := make([]goodshort.SearchResult, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goodshort.SearchResult{
			ID:            searchID(s),
			Title:         searchTitle(s),
			Cover:         searchCover(s),
			Description:   searchDesc(s),
			TotalEpisodes: searchEpisodes(s),
		})
	})
	return out
}
