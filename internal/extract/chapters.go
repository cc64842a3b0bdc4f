package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
	"github.com/JakeFAU/goodshort-api/internal/scrape"
)

var chapterSelectors = []string{".chapter-item", ".episode-item"}

var (
	chapterID = scrape.First(
		scrape.OwnAttr("data-chapter-id"),
		scrape.Transform(scrape.OwnAttr("href"), func(link string) string {
			return scrape.SegmentAfter(link, "/play/")
		}),
	)
	chapterTitle    = scrape.First(scrape.Text(".chapter-title"), scrape.Text(".episode-title"))
	chapterNumber   = scrape.First(scrape.Text(".chapter-num"), scrape.Text(".episode-num"))
	chapterDuration = scrape.Text(".duration")
	chapterThumb    = scrape.Attr("img", "src")
)

// Chapters reads the episode list of a book.
func Chapters(doc *goquery.Document) []goodshort.Chapter {
	nodes := scrape.Select(doc.Selection, chapterSelectors...)
	out := make([]goodshort.Chapter, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goodshort.Chapter{
			ChapterID: chapterID(s),
			Title:     chapterTitle(s),
			Number:    chapterNumber(s),
			Duration:  chapterDuration(s),
			IsLocked:  s.HasClass("locked") || s.Find(".lock").Length() > 0,
			Thumbnail: chapterThumb(s),
		})
	})
	return out
}
