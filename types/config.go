package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultListingBaseURL = "https://wajik-anime-api.vercel.app/otakudesu"

type Config struct {
	App struct {
		Host struct {
			CertificatePath string `json:"cert_path"`
			KeyPath         string `json:"key_path"`
			Port            int    `json:"port"`
			UseTLS          bool   `json:"use_tls"`
		} `json:"host"`
		Cors struct {
			AllowCredentials bool     `json:"allow_credentials"`
			AllowHeaders     []string `json:"allow_headers"`
			AllowOrigins     []string `json:"allow_origins"`
		} `json:"cors"`
		Limiter struct {
			// Expiration is in seconds.
			Expiration               int  `json:"expiration"`
			LimiterSlidingMiddleware bool `json:"limiter_sliding_middleware"`
			Max                      int  `json:"max_requests"`
			SkipSuccessfulRequests   bool `json:"skip_successful_requests"`
		} `json:"limiter"`
		Client struct {
			UserAgent string `json:"user_agent"`
			// Timeout is in seconds.
			Timeout int `json:"timeout"`
			Retries int `json:"retries"`
		} `json:"client"`
	} `json:"app"`
	Listing struct {
		BaseURL       string `json:"base_url"`
		FeaturedLimit int    `json:"featured_limit"`
		RowLimit      int    `json:"row_limit"`
		// Revalidate windows are in seconds.
		Revalidate struct {
			Featured  int `json:"featured"`
			Trending  int `json:"trending"`
			Ongoing   int `json:"ongoing"`
			Completed int `json:"completed"`
		} `json:"revalidate"`
	} `json:"listing"`
	Cache struct {
		Backend string `json:"backend"`
		Redis   struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis"`
	} `json:"cache"`
	Logging struct {
		Level       string `json:"level"`
		Development bool   `json:"development"`
	} `json:"logging"`
	Site struct {
		Name string `json:"name"`
		// CarouselInterval is in seconds.
		CarouselInterval int `json:"carousel_interval"`
		CopyrightYear    int `json:"copyright_year"`
	} `json:"site"`
}

func DefaultConfig() Config {
	var config Config
	config.App.Host.Port = 8080
	config.App.Cors.AllowOrigins = []string{"*"}
	config.App.Cors.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.App.Limiter.Expiration = 60
	config.App.Limiter.Max = 120
	config.App.Client.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	config.App.Client.Timeout = 10
	config.App.Client.Retries = 2
	config.Listing.BaseURL = DefaultListingBaseURL
	config.Listing.FeaturedLimit = 5
	config.Listing.RowLimit = 12
	config.Listing.Revalidate.Featured = 3600
	config.Listing.Revalidate.Trending = 1800
	config.Listing.Revalidate.Ongoing = 1800
	config.Listing.Revalidate.Completed = 3600
	config.Cache.Backend = "memory"
	config.Logging.Level = "info"
	config.Site.Name = "StreamIt"
	config.Site.CarouselInterval = 5
	config.Site.CopyrightYear = 2026
	return config
}

// LoadConfig reads config_path over the defaults and then applies environment
// overrides. A missing file is not an error.
func LoadConfig(config_path string) (Config, error) {
	config := DefaultConfig()
	config_file, err := os.Open(config_path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, err
	}
	if err == nil {
		defer config_file.Close()
		jsonParser := json.NewDecoder(config_file)
		if err := jsonParser.Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", config_path, err)
		}
	}
	if err := loadEnvFiles(); err != nil {
		return config, err
	}
	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// .env.local is loaded first so its values win; godotenv never overwrites.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (config *Config) applyEnv() error {
	if v := os.Getenv("STREAMIT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STREAMIT_PORT: %w", err)
		}
		config.App.Host.Port = port
	}
	if v := os.Getenv("STREAMIT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("ANIME_API_BASE_URL"); v != "" {
		config.Listing.BaseURL = v
	}
	if v := os.Getenv("STREAMIT_CACHE_BACKEND"); v != "" {
		config.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		config.Cache.Redis.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Cache.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		config.Cache.Redis.DB = db
	}
	return nil
}

func (config Config) Validate() error {
	var errs []error
	if config.App.Host.Port < 1 || config.App.Host.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.host.port out of range: %d", config.App.Host.Port))
	}
	if config.App.Host.UseTLS && (config.App.Host.CertificatePath == "" || config.App.Host.KeyPath == "") {
		errs = append(errs, errors.New("app.host.use_tls requires cert_path and key_path"))
	}
	if config.App.Cors.AllowCredentials && slices.Contains(config.App.Cors.AllowOrigins, "*") {
		errs = append(errs, errors.New("app.cors.allow_credentials requires explicit allow_origins, not \"*\""))
	}
	if config.App.Client.Retries < 0 {
		errs = append(errs, errors.New("app.client.retries must not be negative"))
	}
	base, err := url.Parse(strings.TrimSpace(config.Listing.BaseURL))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		errs = append(errs, fmt.Errorf("listing.base_url must be an absolute http(s) url: %q", config.Listing.BaseURL))
	}
	if config.Listing.FeaturedLimit < 1 || config.Listing.RowLimit < 1 {
		errs = append(errs, errors.New("listing limits must be at least 1"))
	}
	r := config.Listing.Revalidate
	if r.Featured < 0 || r.Trending < 0 || r.Ongoing < 0 || r.Completed < 0 {
		errs = append(errs, errors.New("listing.revalidate windows must not be negative"))
	}
	switch config.Cache.Backend {
	case "memory":
	case "redis":
		if config.Cache.Redis.Address == "" {
			errs = append(errs, errors.New("cache.redis.address is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache.backend: %q", config.Cache.Backend))
	}
	if config.Site.CarouselInterval < 1 {
		errs = append(errs, errors.New("site.carousel_interval must be at least 1 second"))
	}
	return errors.Join(errs...)
}

func (config Config) ClientTimeout() time.Duration {
	return time.Duration(config.App.Client.Timeout) * time.Second
}

func (config Config) LimiterExpiration() time.Duration {
	return time.Duration(config.App.Limiter.Expiration) * time.Second
}

func (config Config) CarouselInterval() time.Duration {
	return time.Duration(config.Site.CarouselInterval) * time.Second
}
