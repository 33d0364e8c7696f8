package types

import "time"

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusUpcoming  Status = "upcoming"
)

// Anime is the display record every page and JSON endpoint works with.
type Anime struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage"`
	BannerImage string   `json:"bannerImage,omitempty"`
	Rating      float64  `json:"rating"`
	Episodes    int      `json:"episodes"`
	Status      Status   `json:"status"`
	Genres      []string `json:"genres"`
	Year        int      `json:"year"`
	Season      string   `json:"season,omitempty"`
}

// Banner falls back to the cover when no wide image exists.
func (a Anime) Banner() string {
	if a.BannerImage != "" {
		return a.BannerImage
	}
	return a.CoverImage
}

type Episode struct {
	ID        string    `json:"id"`
	AnimeID   string    `json:"animeId"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Duration  int       `json:"duration"`
	AirDate   time.Time `json:"airDate"`
}
