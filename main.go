package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"streamit/cache"
	"streamit/crawler"
	"streamit/handlers"
	"streamit/listing"
	"streamit/logger"
	"streamit/metrics"
	"streamit/types"
	"streamit/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func newApp(config types.Config, deps *handlers.Deps, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               config.Site.Name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(handlers.RequestLogger(deps.Log))

	// Add CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(config.App.Cors.AllowOrigins, ","),
		AllowHeaders:     strings.Join(config.App.Cors.AllowHeaders, ","),
		AllowCredentials: config.App.Cors.AllowCredentials,
	}))

	// Add Rate Limiter
	var middleware limiter.LimiterHandler
	if config.App.Limiter.LimiterSlidingMiddleware {
		middleware = limiter.SlidingWindow{}
	} else {
		middleware = limiter.FixedWindow{}
	}
	app.Use(limiter.New(limiter.Config{
		Max:                    config.App.Limiter.Max,
		Expiration:             config.LimiterExpiration(),
		LimiterMiddleware:      middleware,
		SkipSuccessfulRequests: config.App.Limiter.SkipSuccessfulRequests,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
	}))

	handlers.Register(app, deps, m.Handler())
	return app
}

func main() {
	config_path := flag.String("config", "./config.json", "path to the JSON config file")
	flag.Parse()

	config, err := types.LoadConfig(*config_path)
	if err != nil {
		log.Printf("Error loading config, cannot continue: %s\n", err.Error())
		os.Exit(1)
	}

	appLog, err := logger.New(logger.Config{
		Level:       config.Logging.Level,
		Development: config.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Error building logger: %s\n", err.Error())
	}
	defer appLog.Sync()
	appLog.Info("Starting storefront",
		logger.String("listing", config.Listing.BaseURL),
		logger.String("cache", config.Cache.Backend))

	store, err := cache.New(config)
	if err != nil {
		appLog.Error("Cache unavailable, falling back to memory", logger.Error(err))
		store = cache.NewMemory(time.Now)
	}
	defer store.Close()

	m := metrics.New()
	catalog := listing.NewService(config, listing.Options{
		Source:  crawler.NewClient(config, appLog),
		Cache:   store,
		Metrics: m,
		Logger:  appLog,
	})
	renderer, err := views.NewRenderer()
	if err != nil {
		appLog.Error("Failed to parse templates", logger.Error(err))
		os.Exit(1)
	}

	app := newApp(config, &handlers.Deps{
		Config:  config,
		Catalog: catalog,
		Views:   renderer,
		Log:     appLog,
	}, m)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		appLog.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Shutdown failed", logger.Error(err))
		}
	}()

	port := fmt.Sprintf(":%d", config.App.Host.Port)
	appLog.Info("Listening", logger.String("addr", port), logger.Bool("tls", config.App.Host.UseTLS))
	if config.App.Host.UseTLS {
		err = app.ListenTLS(port, config.App.Host.CertificatePath, config.App.Host.KeyPath)
	} else {
		appLog.Warn("Not using TLS")
		err = app.Listen(port)
	}
	if err != nil {
		appLog.Error("Server stopped", logger.Error(err))
	}
}
