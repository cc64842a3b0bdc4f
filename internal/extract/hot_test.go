package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

func TestHotRanksFollowDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<section>
		<div class="popular-item" data-book-id="1"><span class="title">One</span><span class="views">1.2M</span></div>
		<div class="hot-item"><a href="/id/book/2">two</a><span class="title">Two</span><span class="play-count">900K</span><span class="rating">9.0</span></div>
		<div class="drama-item" data-book-id="3"><img src="3.jpg"></div>
	</section>`)

	first := Hot(doc)
	require.Equal(t, []goodshort.HotDrama{
		{Rank: 1, ID: "1", Title: "One", Views: "1.2M"},
		{Rank: 2, ID: "2", Title: "Two", Views: "900K", Rating: "9.0"},
		{Rank: 3, ID: "3", Cover: "3.jpg"},
	}, first)
	require.Equal(t, first, Hot(doc))
}
