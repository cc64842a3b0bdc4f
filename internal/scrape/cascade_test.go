package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFirstReturnsFirstNonEmpty(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<div class="card"><h3>  Fallback Title </h3><h2>Last</h2></div>`)
	card := doc.Find(".card")

	rule := First(Text(".title"), Text("h3"), Text("h2"))
	require.Equal(t, "Fallback Title", rule(card))
}

func TestFirstStopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<div class="card"><span class="title">A</span></div>`)
	calls := 0
	counting := func(*goquery.Selection) string {
		calls++
		return "never"
	}

	require.Equal(t, "A", First(Text(".title"), counting)(doc.Find(".card")))
	require.Zero(t, calls)
}

func TestFirstDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<div class="card"></div>`)
	require.Equal(t, "", First(Text(".title"), Attr("img", "src"))(doc.Find(".card")))
	require.Equal(t, "", First()(doc.Find(".card")))
}

func TestAttrFallsBackAcrossAttributes(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<div class="card"><img data-src="lazy.jpg"></div>`)
	rule := First(Attr("img", "src"), Attr("img", "data-src"))
	require.Equal(t, "lazy.jpg", rule(doc.Find(".card")))
}

func TestAttrReadsFirstMatchOnly(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<div><img src="one.jpg"><img src="two.jpg"></div>`)
	require.Equal(t, "one.jpg", Attr("img", "src")(doc.Selection))
}

func TestOwnAttrAndTransform(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<a class="nav" href="/id/channel/romance">Romance</a>`)
	link := doc.Find("a.nav")

	require.Equal(t, "/id/channel/romance", OwnAttr("href")(link))
	require.Equal(t, "romance", Transform(OwnAttr("href"), LastPathSegment)(link))
	require.Equal(t, "", Transform(OwnAttr("data-id"), func(string) string {
		t.Fatal("transform must not run on empty values")
		return ""
	})(link))
	require.Equal(t, "Romance", Text("")(link))
}

func TestSelectUnionInDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<ul>
		<li class="b" id="1"></li>
		<li class="a" id="2"></li>
		<li class="a b" id="3"></li>
	</ul>`)

	var ids []string
	Select(doc.Selection, ".a", ".b").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	require.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestLastPathSegment(t *testing.T) {
	t.Parallel()

	require.Equal(t, "123", LastPathSegment("/book/123"))
	require.Equal(t, "", LastPathSegment("/book/"))
	require.Equal(t, "abc", LastPathSegment("abc"))
	require.Equal(t, "", LastPathSegment(""))
}

func TestSegmentAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		link, marker, want string
	}{
		{"/id/book/31000/intro", "/book/", "31000"},
		{"https://www.goodshort.com/id/book/31000/", "/book/", "31000"},
		{"/id/play/88?bookId=1", "/play/", "88"},
		{"/id/play/88", "/play/", "88"},
		{"/id/series/88", "/play/", ""},
		{"", "/book/", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SegmentAfter(tt.link, tt.marker), tt.link)
	}
}
