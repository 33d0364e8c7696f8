package views

import (
	"time"

	"streamit/types"
)

const DefaultCarouselInterval = 5 * time.Second

// Carousel is the hero banner state. Current is always a valid slide index
// unless the carousel is empty.
type Carousel struct {
	Slides   []types.Anime
	Current  int
	Interval time.Duration
}

type Indicator struct {
	Index  int
	Number int
	Active bool
}

func NewCarousel(slides []types.Anime, current int, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	c := &Carousel{Slides: slides, Interval: interval}
	c.Select(current)
	return c
}

func (c *Carousel) Len() int {
	return len(c.Slides)
}

func (c *Carousel) Empty() bool {
	return len(c.Slides) == 0
}

// Select moves to slide i, clamped into range.
func (c *Carousel) Select(i int) {
	switch {
	case c.Empty() || i < 0:
		c.Current = 0
	case i >= len(c.Slides):
		c.Current = len(c.Slides) - 1
	default:
		c.Current = i
	}
}

// Next is the index the timer advances to.
func (c *Carousel) Next() int {
	if c.Empty() {
		return 0
	}
	return (c.Current + 1) % len(c.Slides)
}

func (c *Carousel) Prev() int {
	if c.Empty() {
		return 0
	}
	return (c.Current - 1 + len(c.Slides)) % len(c.Slides)
}

func (c *Carousel) Slide() types.Anime {
	if c.Empty() {
		return types.Anime{}
	}
	return c.Slides[c.Current]
}

func (c *Carousel) IntervalMillis() int64 {
	return c.Interval.Milliseconds()
}

func (c *Carousel) Indicators() []Indicator {
	out := make([]Indicator, len(c.Slides))
	for i := range c.Slides {
		out[i] = Indicator{Index: i, Number: i + 1, Active: i == c.Current}
	}
	return out
}
