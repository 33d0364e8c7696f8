package listing

import (
	"slices"

	"streamit/types"
)

var mockAnime = []types.Anime{
	{
		ID:          "1",
		Title:       "Demon Slayer: Kimetsu no Yaiba",
		Description: "A family is attacked by demons and only two members survive - Tanjiro and his sister Nezuko, who is turning into a demon slowly.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=Demon+Slayer",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=Demon+Slayer",
		Rating:      8.7,
		Episodes:    26,
		Status:      types.StatusCompleted,
		Genres:      []string{"Action", "Adventure", "Supernatural"},
		Year:        2019,
		Season:      "Spring",
	},
	{
		ID:          "2",
		Title:       "Attack on Titan",
		Description: "After his hometown is destroyed and his mother is killed, young Eren Yeager vows to cleanse the earth of the giant humanoid Titans.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=Attack+on+Titan",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=Attack+on+Titan",
		Rating:      9.0,
		Episodes:    75,
		Status:      types.StatusCompleted,
		Genres:      []string{"Action", "Drama", "Fantasy"},
		Year:        2013,
		Season:      "Spring",
	},
	{
		ID:          "3",
		Title:       "My Hero Academia",
		Description: "A superhero-admiring boy without any powers enrolls in a prestigious hero academy and learns what it really means to be a hero.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=My+Hero+Academia",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=My+Hero+Academia",
		Rating:      8.4,
		Episodes:    88,
		Status:      types.StatusOngoing,
		Genres:      []string{"Action", "Comedy", "School"},
		Year:        2016,
		Season:      "Spring",
	},
	{
		ID:          "4",
		Title:       "Jujutsu Kaisen",
		Description: "A boy swallows a cursed talisman and must learn to control the powers he gains to survive in a world of curses.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=Jujutsu+Kaisen",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=Jujutsu+Kaisen",
		Rating:      8.6,
		Episodes:    47,
		Status:      types.StatusOngoing,
		Genres:      []string{"Action", "Supernatural", "School"},
		Year:        2020,
		Season:      "Fall",
	},
	{
		ID:          "5",
		Title:       "Chainsaw Man",
		Description: "Following a betrayal, a young man named Denji merges with his pet devil and becomes a chainsaw-wielding devil hunter.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=Chainsaw+Man",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=Chainsaw+Man",
		Rating:      8.5,
		Episodes:    12,
		Status:      types.StatusCompleted,
		Genres:      []string{"Action", "Horror", "Supernatural"},
		Year:        2022,
		Season:      "Fall",
	},
	{
		ID:          "6",
		Title:       "Spy x Family",
		Description: "A spy must create a fake family to execute a mission, unaware that his adopted daughter is a telepath and his wife is an assassin.",
		CoverImage:  "https://placehold.co/300x450/1a1a1a/666?text=Spy+x+Family",
		BannerImage: "https://placehold.co/1920x600/1a1a1a/666?text=Spy+x+Family",
		Rating:      8.7,
		Episodes:    25,
		Status:      types.StatusOngoing,
		Genres:      []string{"Action", "Comedy", "Slice of Life"},
		Year:        2022,
		Season:      "Spring",
	},
}

// Mock returns a private copy of the static catalog; callers may sort or
// edit it freely.
func Mock() []types.Anime {
	out := make([]types.Anime, len(mockAnime))
	for i, a := range mockAnime {
		a.Genres = slices.Clone(a.Genres)
		out[i] = a
	}
	return out
}

func mockWhere(keep func(types.Anime) bool) []types.Anime {
	var out []types.Anime
	for _, a := range Mock() {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
