// Package listing is the storefront's data access. Every section reads the
// third-party listing endpoint and falls back to the static catalog when the
// endpoint cannot be used.
package listing

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"streamit/cache"
	"streamit/logger"
	"streamit/metrics"
	"streamit/types"
	"streamit/util"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("anime not found")

const (
	pathOngoing   = "ongoing"
	pathCompleted = "completed"

	maxEpisodes     = 12
	episodeDuration = 24 * 60

	// failureBackoff is how long id lookups keep answering from the last
	// snapshot of a path whose fetch failed.
	failureBackoff = 30 * time.Second
)

var upstreamPaths = []struct {
	path   string
	status types.Status
}{
	{pathOngoing, types.StatusOngoing},
	{pathCompleted, types.StatusCompleted},
}

func statusFor(path string) types.Status {
	if path == pathCompleted {
		return types.StatusCompleted
	}
	return types.StatusOngoing
}

// Source fetches a listing URL and returns the body of a 2xx reply.
type Source interface {
	Get(ctx context.Context, uri string) ([]byte, error)
}

type Options struct {
	Source  Source
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Logger  logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	source        Source
	cache         cache.Cache
	metrics       *metrics.Metrics
	log           logger.Logger
	now           func() time.Time
	baseURL       string
	featuredLimit int
	rowLimit      int
	ttl           map[string]time.Duration
	group         singleflight.Group

	mu sync.RWMutex
	// snapshots holds the full mapped listing last read for each path.
	snapshots map[string][]types.Anime
	failedAt  map[string]time.Time
}

func NewService(config types.Config, opts Options) *Service {
	s := &Service{
		source:        opts.Source,
		cache:         opts.Cache,
		metrics:       opts.Metrics,
		log:           opts.Logger,
		now:           opts.Now,
		baseURL:       strings.TrimRight(strings.TrimSpace(config.Listing.BaseURL), "/"),
		featuredLimit: config.Listing.FeaturedLimit,
		rowLimit:      config.Listing.RowLimit,
		snapshots:     make(map[string][]types.Anime),
		failedAt:      make(map[string]time.Time),
	}
	if s.cache == nil {
		s.cache = cache.NewMemory(time.Now)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	// A cached body serves every section reading the same path, so it lives
	// for the shortest window among them.
	r := config.Listing.Revalidate
	s.ttl = map[string]time.Duration{
		pathOngoing:   seconds(min(r.Featured, r.Trending, r.Ongoing)),
		pathCompleted: seconds(r.Completed),
	}
	return s
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Featured feeds the hero carousel.
func (s *Service) Featured(ctx context.Context) []types.Anime {
	list, err := s.fetch(ctx, pathOngoing)
	if err != nil {
		s.fallback(ctx, "featured", err)
		return Mock()[:3]
	}
	return mapList(list, s.featuredLimit, s.now().Year(), types.StatusOngoing)
}

func (s *Service) Trending(ctx context.Context) []types.Anime {
	list, err := s.fetch(ctx, pathOngoing)
	if err != nil {
		s.fallback(ctx, "trending", err)
		catalog := Mock()
		slices.SortStableFunc(catalog, func(a, b types.Anime) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
		return catalog
	}
	return mapList(list, s.rowLimit, s.now().Year(), types.StatusOngoing)
}

func (s *Service) Ongoing(ctx context.Context) []types.Anime {
	list, err := s.fetch(ctx, pathOngoing)
	if err != nil {
		s.fallback(ctx, "ongoing", err)
		return mockWhere(func(a types.Anime) bool { return a.Status == types.StatusOngoing })
	}
	return mapList(list, s.rowLimit, s.now().Year(), types.StatusOngoing)
}

func (s *Service) Completed(ctx context.Context) []types.Anime {
	list, err := s.fetch(ctx, pathCompleted)
	if err != nil {
		s.fallback(ctx, "completed", err)
		return mockWhere(func(a types.Anime) bool { return a.Status == types.StatusCompleted })
	}
	return mapList(list, s.rowLimit, s.now().Year(), types.StatusCompleted)
}

// Seasonal has no upstream counterpart and always reads the static catalog.
func (s *Service) Seasonal(ctx context.Context) []types.Anime {
	return mockWhere(func(a types.Anime) bool { return a.Season == "Spring" })
}

// Browse returns every record the storefront knows about: the static
// catalog first, then the upstream ongoing and completed listings.
// Upstream failures only shrink the result.
func (s *Service) Browse(ctx context.Context) []types.Anime {
	out := Mock()
	ids := make(map[string]bool, len(out))
	for _, a := range out {
		ids[a.ID] = true
	}
	for _, a := range s.upstreamRecords(ctx) {
		if !ids[a.ID] {
			ids[a.ID] = true
			out = append(out, a)
		}
	}
	return out
}

func (s *Service) upstreamRecords(ctx context.Context) []types.Anime {
	var out []types.Anime
	for _, src := range upstreamPaths {
		list, err := s.fetch(ctx, src.path)
		if err != nil {
			logger.FromContext(ctx, s.log).Warn("Skipping upstream listing",
				logger.String("path", src.path), logger.Error(err))
			continue
		}
		out = append(out, mapList(list, -1, s.now().Year(), src.status)...)
	}
	return out
}

// AnimeByID looks in the static catalog, then in the latest upstream
// listings. A path whose fetch failed within failureBackoff is not retried;
// its last snapshot answers instead.
func (s *Service) AnimeByID(ctx context.Context, id string) (types.Anime, error) {
	for _, a := range Mock() {
		if a.ID == id {
			return a, nil
		}
	}
	for _, src := range upstreamPaths {
		if s.recentlyFailed(src.path) {
			continue
		}
		if _, err := s.fetch(ctx, src.path); err != nil {
			logger.FromContext(ctx, s.log).Warn("Listing unavailable for lookup",
				logger.String("path", src.path), logger.Error(err))
		}
	}
	if a, ok := s.lookupSnapshot(id); ok {
		return a, nil
	}
	return types.Anime{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Episodes synthesizes up to twelve placeholder episodes for an anime.
func (s *Service) Episodes(ctx context.Context, animeID string) ([]types.Episode, error) {
	anime, err := s.AnimeByID(ctx, animeID)
	if err != nil {
		return nil, err
	}
	n := min(anime.Episodes, maxEpisodes)
	episodes := make([]types.Episode, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		episodes = append(episodes, types.Episode{
			ID:        fmt.Sprintf("%s-ep-%d", animeID, i),
			AnimeID:   animeID,
			Number:    i,
			Title:     fmt.Sprintf("Episode %d", i),
			Thumbnail: fmt.Sprintf("https://placehold.co/320x180/1a1a1a/666?text=Ep+%d", i),
			Duration:  episodeDuration,
			AirDate:   time.Date(2023, time.January, i, 0, 0, 0, 0, time.UTC),
		})
	}
	return episodes, nil
}

// Search matches the query against title, description and genres, ignoring
// case. A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string) []types.Anime {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.Anime{}
	}
	out := []types.Anime{}
	for _, a := range s.Browse(ctx) {
		if matches(a, query) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a types.Anime, query string) bool {
	if util.ContainsFold(a.Title, query) || util.ContainsFold(a.Description, query) {
		return true
	}
	return slices.ContainsFunc(a.Genres, func(g string) bool {
		return util.ContainsFold(g, query)
	})
}

// fetch returns the animeList behind path, from cache when it is fresh.
// Concurrent fetches of one path share a single load.
func (s *Service) fetch(ctx context.Context, path string) ([]upstreamAnime, error) {
	v, err, _ := s.group.Do(path, func() (interface{}, error) {
		return s.load(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]upstreamAnime), nil
}

// load reads path through the cache. Only bodies that decode are cached.
// Every successful read replaces the path's snapshot.
func (s *Service) load(ctx context.Context, path string) ([]upstreamAnime, error) {
	log := logger.FromContext(ctx, s.log)
	body, ok, err := s.cache.Get(ctx, path)
	if err != nil {
		log.Warn("Cache read failed", logger.String("path", path), logger.Error(err))
	}
	if ok {
		if list, err := decodeList(body); err == nil {
			s.metrics.ObserveUpstream(path, metrics.OutcomeCached, 0)
			s.snapshot(path, list)
			return list, nil
		}
	}

	start := time.Now()
	body, err = s.source.Get(ctx, s.baseURL+"/"+path)
	if err == nil {
		var list []upstreamAnime
		if list, err = decodeList(body); err == nil {
			s.metrics.ObserveUpstream(path, metrics.OutcomeOK, time.Since(start))
			s.snapshot(path, list)
			if err := s.cache.Set(ctx, path, body, s.ttl[path]); err != nil {
				log.Warn("Cache write failed", logger.String("path", path), logger.Error(err))
			}
			return list, nil
		}
	}
	s.metrics.ObserveUpstream(path, metrics.OutcomeError, time.Since(start))
	s.mu.Lock()
	s.failedAt[path] = s.now()
	s.mu.Unlock()
	return nil, err
}

func (s *Service) fallback(ctx context.Context, section string, err error) {
	s.metrics.Fallback(section)
	logger.FromContext(ctx, s.log).Warn("Listing endpoint failed, serving mock data",
		logger.String("section", section), logger.Error(err))
}

func (s *Service) snapshot(path string, list []upstreamAnime) {
	mapped := mapList(list, -1, s.now().Year(), statusFor(path))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[path] = mapped
	delete(s.failedAt, path)
}

func (s *Service) recentlyFailed(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.failedAt[path]
	return ok && s.now().Sub(at) < failureBackoff
}

func (s *Service) lookupSnapshot(id string) (types.Anime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range upstreamPaths {
		for _, a := range s.snapshots[src.path] {
			if a.ID == id {
				a.Genres = slices.Clone(a.Genres)
				return a, true
			}
		}
	}
	return types.Anime{}, false
}
