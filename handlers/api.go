package handlers

import (
	"context"
	"errors"
	"strings"

	"streamit/listing"
	"streamit/logger"
	"streamit/types"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"txid":  txID(c),
	})
}

// ListJSON serves one catalog section as a JSON array.
func ListJSON(deps *Deps, fetch func(ctx context.Context) []types.Anime) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, ListJSON)
		list := fetch(c.UserContext())
		if list == nil {
			list = []types.Anime{}
		}
		return c.Status(fiber.StatusOK).JSON(list)
	}
}

func AnimeJSON(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := begin(c, deps, AnimeJSON)
		anime, err := deps.Catalog.AnimeByID(c.UserContext(), c.Params("id"))
		if errors.Is(err, listing.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "anime not found")
		}
		if err != nil {
			log.Error("Failed to look up anime", logger.Error(err))
			return jsonError(c, fiber.StatusInternalServerError, "internal error")
		}
		return c.Status(fiber.StatusOK).JSON(anime)
	}
}

func EpisodesJSON(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := begin(c, deps, EpisodesJSON)
		episodes, err := deps.Catalog.Episodes(c.UserContext(), c.Params("id"))
		if errors.Is(err, listing.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "anime not found")
		}
		if err != nil {
			log.Error("Failed to list episodes", logger.Error(err))
			return jsonError(c, fiber.StatusInternalServerError, "internal error")
		}
		return c.Status(fiber.StatusOK).JSON(episodes)
	}
}

func SearchJSON(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, SearchJSON)
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return jsonError(c, fiber.StatusBadRequest, "query parameter q is required")
		}
		return c.Status(fiber.StatusOK).JSON(deps.Catalog.Search(c.UserContext(), query))
	}
}
