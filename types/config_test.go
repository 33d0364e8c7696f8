package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, DefaultListingBaseURL, config.Listing.BaseURL)
	assert.Equal(t, 5*time.Second, config.CarouselInterval())
	assert.Equal(t, time.Minute, config.LimiterExpiration())
	assert.Equal(t, 10*time.Second, config.ClientTimeout())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.App.Host.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"host": {"port": 9090}, "limiter": {"max_requests": 10, "limiter_sliding_middleware": true}},
		"listing": {"base_url": "http://localhost:3000/otakudesu", "row_limit": 8},
		"site": {"name": "AniShelf"}
	}`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, config.App.Host.Port)
	assert.Equal(t, 10, config.App.Limiter.Max)
	assert.True(t, config.App.Limiter.LimiterSlidingMiddleware)
	assert.Equal(t, "http://localhost:3000/otakudesu", config.Listing.BaseURL)
	assert.Equal(t, 8, config.Listing.RowLimit)
	assert.Equal(t, 5, config.Listing.FeaturedLimit)
	assert.Equal(t, "AniShelf", config.Site.Name)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STREAMIT_PORT", "7000")
	t.Setenv("ANIME_API_BASE_URL", "https://mirror.example/otakudesu")
	t.Setenv("STREAMIT_CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 7000, config.App.Host.Port)
	assert.Equal(t, "https://mirror.example/otakudesu", config.Listing.BaseURL)
	assert.Equal(t, "redis", config.Cache.Backend)
	assert.Equal(t, 2, config.Cache.Redis.DB)
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("STREAMIT_PORT", "eighty")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app":`), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"port":          func(c *Config) { c.App.Host.Port = 0 },
		"tls":           func(c *Config) { c.App.Host.UseTLS = true },
		"base url":      func(c *Config) { c.Listing.BaseURL = "wajik-anime-api" },
		"row limit":     func(c *Config) { c.Listing.RowLimit = 0 },
		"revalidate":    func(c *Config) { c.Listing.Revalidate.Ongoing = -1 },
		"backend":       func(c *Config) { c.Cache.Backend = "memcached" },
		"redis address": func(c *Config) { c.Cache.Backend = "redis" },
		"carousel":      func(c *Config) { c.Site.CarouselInterval = 0 },
		"retries":       func(c *Config) { c.App.Client.Retries = -1 },
		"cors wildcard": func(c *Config) { c.App.Cors.AllowCredentials = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			config := DefaultConfig()
			mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestValidate_CredentialsWithExplicitOrigins(t *testing.T) {
	config := DefaultConfig()
	config.App.Cors.AllowCredentials = true
	config.App.Cors.AllowOrigins = []string{"https://streamit.example"}
	assert.NoError(t, config.Validate())
}

func TestAnimeBanner(t *testing.T) {
	assert.Equal(t, "wide.jpg", Anime{CoverImage: "cover.jpg", BannerImage: "wide.jpg"}.Banner())
	assert.Equal(t, "cover.jpg", Anime{CoverImage: "cover.jpg"}.Banner())
}
