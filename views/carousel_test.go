package views

import (
	"testing"
	"time"

	"streamit/types"

	"github.com/stretchr/testify/assert"
)

func TestCarousel_WrapsAndClamps(t *testing.T) {
	slides := []types.Anime{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	c := NewCarousel(slides, 0, 0)
	assert.Equal(t, DefaultCarouselInterval, c.Interval)
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Prev())

	c.Select(2)
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, "c", c.Slide().ID)

	c.Select(10)
	assert.Equal(t, 2, c.Current)
	c.Select(-4)
	assert.Equal(t, 0, c.Current)
}

func TestCarousel_Empty(t *testing.T) {
	c := NewCarousel(nil, 3, time.Second)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Current)
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
	assert.Equal(t, types.Anime{}, c.Slide())
	assert.Empty(t, c.Indicators())
	assert.Equal(t, int64(1000), c.IntervalMillis())
}

func TestCarousel_Indicators(t *testing.T) {
	c := NewCarousel([]types.Anime{{ID: "a"}, {ID: "b"}}, 1, time.Second)
	assert.Equal(t, []Indicator{
		{Index: 0, Number: 1, Active: false},
		{Index: 1, Number: 2, Active: true},
	}, c.Indicators())
}

func TestNavbar_SearchOpen(t *testing.T) {
	assert.False(t, NewNavbar("StreamIt", "/", false, "").SearchOpen)
	assert.True(t, NewNavbar("StreamIt", "/", true, "").SearchOpen)
	assert.True(t, NewNavbar("StreamIt", "/", false, "naruto").SearchOpen)
	assert.True(t, NewNavbar("StreamIt", "/", false, "").Links[0].Active)
}
