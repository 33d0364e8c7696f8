package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"streamit/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnime() []types.Anime {
	return []types.Anime{
		{ID: "1", Title: "Demon Slayer", Description: "Tanjiro and Nezuko.", CoverImage: "https://img.example/1.jpg",
			BannerImage: "https://img.example/1-wide.jpg", Rating: 8.7, Episodes: 26, Status: types.StatusCompleted,
			Genres: []string{"Action", "Adventure"}, Year: 2019, Season: "Spring"},
		{ID: "on-1", Title: "One Piece", Description: "Latest Episode: 1100 • Airs on Minggu",
			CoverImage: "https://img.example/op.jpg", Episodes: 1100, Status: types.StatusOngoing, Genres: []string{}, Year: 2026},
	}
}

func render(t *testing.T, name string, page Page) *goquery.Document {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func basePage(path string) Page {
	return Page{
		Nav:    NewNavbar("StreamIt", path, false, ""),
		Footer: NewFooter("StreamIt", 2026),
	}
}

func TestHome_RendersHeroAndRows(t *testing.T) {
	page := basePage("/")
	page.Hero = NewCarousel(sampleAnime(), 1, 5*time.Second)
	page.Rows = []Row{
		{Title: "Ongoing", Href: "/ongoing", Items: sampleAnime()[1:]},
		{Title: "Completed", Href: "/completed", Items: sampleAnime()[:1]},
	}
	doc := render(t, "home", page)

	hero := doc.Find("section.hero")
	require.Equal(t, 1, hero.Length())
	assert.Equal(t, "5000", hero.AttrOr("data-interval", ""))
	assert.Equal(t, 2, hero.Find(".slide").Length())
	assert.Equal(t, "One Piece", strings.TrimSpace(hero.Find(".slide.active h1").Text()))
	assert.Contains(t, hero.Find(".slide").First().AttrOr("style", ""), "1-wide.jpg")
	assert.Contains(t, hero.Find(".slide").Eq(1).AttrOr("style", ""), "op.jpg")
	assert.Equal(t, "/watch/1", hero.Find(".slide").First().Find("a.watch").AttrOr("href", ""))
	assert.Equal(t, "/anime/1", hero.Find(".slide").First().Find("a.info").AttrOr("href", ""))
	assert.Equal(t, 2, hero.Find(".slide").First().Find(".chip").Length())

	dots := hero.Find(".indicators a")
	assert.Equal(t, 2, dots.Length())
	assert.True(t, dots.Eq(1).HasClass("active"))
	assert.Equal(t, "Go to slide 1", dots.First().AttrOr("aria-label", ""))

	rows := doc.Find("section.row")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "Ongoing", rows.First().Find("h2").Text())
	assert.Equal(t, "/ongoing", rows.First().Find("a.view-all").AttrOr("href", ""))
	assert.Equal(t, 2, rows.First().Find("button.arrow").Length())
}

func TestHome_EmptyCarouselRendersNothing(t *testing.T) {
	page := basePage("/")
	page.Hero = NewCarousel(nil, 0, 0)
	doc := render(t, "home", page)
	assert.Equal(t, 0, doc.Find("section.hero").Length())
}

func TestCard(t *testing.T) {
	page := basePage("/browse")
	page.Grid = &Grid{Title: "All Anime", Items: sampleAnime()}
	doc := render(t, "grid", page)

	cards := doc.Find(".grid a.card")
	require.Equal(t, 2, cards.Length())

	completed := cards.First()
	assert.Equal(t, "/anime/1", completed.AttrOr("href", ""))
	assert.Equal(t, "⭐ 8.7", completed.Find(".badge.rating").Text())
	assert.Equal(t, 0, completed.Find(".badge.ongoing").Length())
	assert.Equal(t, "2019 • 26 eps", completed.Find("p.meta").Text())

	ongoing := cards.Eq(1)
	assert.Equal(t, "⭐ 0", ongoing.Find(".badge.rating").Text())
	assert.Equal(t, "Ongoing", ongoing.Find(".badge.ongoing").Text())
}

func TestGrid_EmptyText(t *testing.T) {
	page := basePage("/search")
	page.Grid = &Grid{Title: "Search", EmptyText: "No anime matched."}
	doc := render(t, "grid", page)
	assert.Equal(t, "No anime matched.", doc.Find("p.empty").Text())
}

func TestNavbarAndFooter(t *testing.T) {
	page := basePage("/trending")
	page.Nav = NewNavbar("StreamIt", "/trending", false, "titan")
	page.Grid = &Grid{Title: "Trending"}
	doc := render(t, "grid", page)

	assert.Equal(t, "Trending", doc.Find(".navbar nav a.active").Text())
	assert.Equal(t, 4, doc.Find(".navbar nav a").Length())
	assert.True(t, doc.Find(".search").HasClass("open"))
	assert.Equal(t, "titan", doc.Find(".search input").AttrOr("value", ""))

	assert.Equal(t, 4, doc.Find(".footer .groups h3").Length())
	assert.Equal(t, "© 2026 StreamIt. All rights reserved.", doc.Find(".footer .copyright").Text())
	assert.Equal(t, "StreamIt", doc.Find("title").Text())
}

func TestDetail(t *testing.T) {
	page := basePage("/anime/1")
	page.Title = "Demon Slayer"
	page.Detail = &Detail{
		Anime: sampleAnime()[0],
		Episodes: []types.Episode{{
			ID: "1-ep-1", AnimeID: "1", Number: 1, Title: "Episode 1",
			Thumbnail: "https://placehold.co/320x180/1a1a1a/666?text=Ep+1", Duration: 1440,
			AirDate: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	doc := render(t, "detail", page)

	assert.Equal(t, "Demon Slayer | StreamIt", doc.Find("title").Text())
	assert.Equal(t, "Demon Slayer", doc.Find(".detail h1").Text())
	assert.Equal(t, 1, doc.Find("li.episode").Length())
	assert.Equal(t, "24 min • Jan 1, 2023", doc.Find("li.episode p").Text())
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", Page{}))
}
