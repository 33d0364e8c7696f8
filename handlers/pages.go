package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"streamit/listing"
	"streamit/logger"
	"streamit/types"
	"streamit/views"

	"github.com/gofiber/fiber/v2"
)

// Home renders the hero carousel followed by the Ongoing and Completed rows.
// The three sections are fetched concurrently.
func Home(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, Home)
		ctx := c.UserContext()

		var featured, ongoing, completed []types.Anime
		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			featured = deps.Catalog.Featured(ctx)
		}()
		go func() {
			defer wg.Done()
			ongoing = deps.Catalog.Ongoing(ctx)
		}()
		go func() {
			defer wg.Done()
			completed = deps.Catalog.Completed(ctx)
		}()
		wg.Wait()

		page := deps.page(c, "")
		page.Hero = views.NewCarousel(featured, c.QueryInt("slide", 0), deps.Config.CarouselInterval())
		page.Rows = []views.Row{
			{Title: "Ongoing", Href: "/ongoing", Items: ongoing},
			{Title: "Completed", Href: "/completed", Items: completed},
		}
		return deps.render(c, fiber.StatusOK, "home", page)
	}
}

// GridPage renders one catalog section as a full-page grid.
func GridPage(deps *Deps, title string, fetch func(ctx context.Context) []types.Anime) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, GridPage)
		page := deps.page(c, title)
		page.Grid = &views.Grid{
			Title:     title,
			Items:     fetch(c.UserContext()),
			EmptyText: "Nothing to show here yet.",
		}
		return deps.render(c, fiber.StatusOK, "grid", page)
	}
}

func AnimeDetail(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := begin(c, deps, AnimeDetail)
		id := c.Params("id")
		anime, err := deps.Catalog.AnimeByID(c.UserContext(), id)
		if errors.Is(err, listing.ErrNotFound) {
			return deps.errorPage(c, fiber.StatusNotFound, "Anime not found")
		}
		if err != nil {
			log.Error("Failed to look up anime", logger.String("id", id), logger.Error(err))
			return deps.errorPage(c, fiber.StatusInternalServerError, "Something went wrong")
		}
		episodes, err := deps.Catalog.Episodes(c.UserContext(), id)
		if err != nil {
			log.Error("Failed to list episodes", logger.String("id", id), logger.Error(err))
			return deps.errorPage(c, fiber.StatusInternalServerError, "Something went wrong")
		}

		page := deps.page(c, anime.Title)
		page.Detail = &views.Detail{Anime: anime, Episodes: episodes}
		return deps.render(c, fiber.StatusOK, "detail", page)
	}
}

func SearchPage(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, SearchPage)
		query := strings.TrimSpace(c.Query("q"))
		page := deps.page(c, "Search")
		grid := &views.Grid{Title: "Search", EmptyText: "Type a title, genre or keyword to search."}
		if query != "" {
			grid.Title = fmt.Sprintf("Results for “%s”", query)
			grid.Items = deps.Catalog.Search(c.UserContext(), query)
			grid.EmptyText = "No anime matched your search."
		}
		page.Grid = grid
		return deps.render(c, fiber.StatusOK, "grid", page)
	}
}
