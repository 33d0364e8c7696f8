package listing

import (
	"encoding/json"
	"errors"
	"fmt"

	"streamit/crawler"
	"streamit/types"
	"streamit/util"
)

// upstreamAnime is one entry of the Otakudesu animeList.
type upstreamAnime struct {
	Title             string `json:"title"`
	Poster            string `json:"poster"`
	Episodes          string `json:"episodes"`
	AnimeID           string `json:"animeId"`
	LatestReleaseDate string `json:"latestReleaseDate"`
	ReleaseDay        string `json:"releaseDay"`
	OtakudesuURL      string `json:"otakudesuUrl"`
}

type upstreamResponse struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Message       string `json:"message"`
	Data          *struct {
		AnimeList *[]upstreamAnime `json:"animeList"`
	} `json:"data"`
	Pagination struct {
		CurrentPage int  `json:"currentPage"`
		HasPrevPage bool `json:"hasPrevPage"`
		NextPage    int  `json:"nextPage"`
		HasNextPage bool `json:"hasNextPage"`
		TotalPages  int  `json:"totalPages"`
	} `json:"pagination"`
}

var errNoAnimeList = errors.New("response has no data.animeList")

func decodeList(body []byte) ([]upstreamAnime, error) {
	var response upstreamResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if response.Data == nil || response.Data.AnimeList == nil {
		return nil, errNoAnimeList
	}
	return *response.Data.AnimeList, nil
}

// toAnime reshapes an upstream entry. The endpoint carries no rating, genres
// or season, so those stay empty and the year is the current one.
func toAnime(u upstreamAnime, year int) types.Anime {
	episodes := crawler.PlainText(u.Episodes)
	return types.Anime{
		ID:          u.AnimeID,
		Title:       crawler.PlainText(u.Title),
		Description: fmt.Sprintf("Latest Episode: %s • Airs on %s", episodes, crawler.PlainText(u.ReleaseDay)),
		CoverImage:  u.Poster,
		BannerImage: u.Poster,
		Rating:      0,
		Episodes:    util.LeadingInt(episodes),
		Status:      types.StatusOngoing,
		Genres:      []string{},
		Year:        year,
	}
}

func mapList(list []upstreamAnime, limit int, year int, status types.Status) []types.Anime {
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]types.Anime, 0, len(list))
	for _, u := range list {
		a := toAnime(u, year)
		a.Status = status
		out = append(out, a)
	}
	return out
}
