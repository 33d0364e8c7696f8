package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Register mounts every page, JSON and ops route. metrics may be nil.
func Register(app *fiber.App, deps *Deps, metrics http.Handler) {
	catalog := deps.Catalog

	app.Get("/", Home(deps))
	app.Get("/browse", GridPage(deps, "All Anime", catalog.Browse))
	app.Get("/trending", GridPage(deps, "Trending", catalog.Trending))
	app.Get("/seasonal", GridPage(deps, "Seasonal", catalog.Seasonal))
	app.Get("/ongoing", GridPage(deps, "Ongoing", catalog.Ongoing))
	app.Get("/completed", GridPage(deps, "Completed", catalog.Completed))
	app.Get("/anime/:id", AnimeDetail(deps))
	app.Get("/search", SearchPage(deps))

	api := app.Group("/api")
	api.Get("/featured", ListJSON(deps, catalog.Featured))
	api.Get("/trending", ListJSON(deps, catalog.Trending))
	api.Get("/ongoing", ListJSON(deps, catalog.Ongoing))
	api.Get("/completed", ListJSON(deps, catalog.Completed))
	api.Get("/seasonal", ListJSON(deps, catalog.Seasonal))
	api.Get("/browse", ListJSON(deps, catalog.Browse))
	api.Get("/search", SearchJSON(deps))
	api.Get("/anime/:id", AnimeJSON(deps))
	api.Get("/anime/:id/episodes", EpisodesJSON(deps))

	app.Get("/healthz", Health)
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	app.Use(NotFound(deps))
}
