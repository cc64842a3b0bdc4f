package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var (
	detailTitle = scrape.First(scrape.Text("h1"), scrape.Text(".book-title"))
	detailDesc  = scrape.First(
		scrape.Text(".book-desc"),
		scrape.Text(".description"),
		scrape.Text(".synopsis"),
	)
	detailCover    = scrape.First(scrape.Attr(".book-cover img", "src"), scrape.Attr(".poster img", "src"))
	detailRating   = scrape.First(scrape.Text(".rating"), scrape.Text(".score"))
	detailGenre    = scrape.First(scrape.Text(".genre"), scrape.Text(".tags"))
	detailEpisodes = scrape.First(scrape.Text(".episode-count"), scrape.Text(".chapter-count"))
	detailCast     = scrape.First(scrape.Text(".cast"), scrape.Text(".actors"))
	detailStatus   = scrape.Text(".status")
	detailRelease  = scrape.Text(".release-date")
)

// Detail reads the book page. The id is echoed from the request.
func Detail(doc *goquery.Document, id string) goodshort.DramaDetail {
	root := doc.Selection
	return goodshort.DramaDetail{
		ID:            id,
		Title:         detailTitle(root),
		Description:   detailDesc(root),
		Cover:         detailCover(root),
		Rating:        detailRating(root),
		Genre:         SplitGenres(detailGenre(root)),
		TotalEpisodes: detailEpisodes(root),
		Cast:          detailCast(root),
		Status:        detailStatus(root),
		ReleaseDate:   detailRelease(root),
	}
}

// SplitGenres splits a comma separated genre line, trimming each entry and
// dropping empty ones. The result is never nil.
func SplitGenres(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
