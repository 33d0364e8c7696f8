package handlers

import (
	"bytes"
	"context"
	"time"

	"streamit/logger"
	"streamit/types"
	"streamit/util"
	"streamit/views"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Catalog is the data the pages are built from.
type Catalog interface {
	Featured(ctx context.Context) []types.Anime
	Trending(ctx context.Context) []types.Anime
	Ongoing(ctx context.Context) []types.Anime
	Completed(ctx context.Context) []types.Anime
	Seasonal(ctx context.Context) []types.Anime
	Browse(ctx context.Context) []types.Anime
	AnimeByID(ctx context.Context, id string) (types.Anime, error)
	Episodes(ctx context.Context, animeID string) ([]types.Episode, error)
	Search(ctx context.Context, query string) []types.Anime
}

type Deps struct {
	Config  types.Config
	Catalog Catalog
	Views   *views.Renderer
	Log     logger.Logger
}

const requestIDKey = "requestid"

// RequestLogger gives every request a transaction id and a logger carrying
// it, then logs the outcome.
func RequestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txid, _ := c.Locals(requestIDKey).(string)
		if txid == "" {
			txid = uuid.NewString()
			c.Locals(requestIDKey, txid)
			c.Set(fiber.HeaderXRequestID, txid)
		}
		reqLog := log.With(logger.String("txid", txid))
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		reqLog.Info("Request served",
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", status),
			logger.Duration("took", time.Since(start)))
		return err
	}
}

func txID(c *fiber.Ctx) string {
	txid, _ := c.Locals(requestIDKey).(string)
	return txid
}

// begin logs entry into a handler the way every handler does and returns
// the request logger.
func begin(c *fiber.Ctx, deps *Deps, handler interface{}) logger.Logger {
	log := logger.FromContext(c.UserContext(), deps.Log)
	log.Debug("Handling request", logger.String("handler", util.GetFunctionName(handler)))
	return log
}

func (deps *Deps) page(c *fiber.Ctx, title string) views.Page {
	return views.Page{
		Title:  title,
		Nav:    views.NewNavbar(deps.Config.Site.Name, c.Path(), c.Query("search") == "open", c.Query("q")),
		Footer: views.NewFooter(deps.Config.Site.Name, deps.Config.Site.CopyrightYear),
	}
}

// render writes a full page or nothing: templates execute into a buffer.
func (deps *Deps) render(c *fiber.Ctx, status int, name string, page views.Page) error {
	var buf bytes.Buffer
	if err := deps.Views.Render(&buf, name, page); err != nil {
		logger.FromContext(c.UserContext(), deps.Log).Error("Failed to render page",
			logger.String("page", name), logger.Error(err))
		c.Type("txt", "utf-8")
		return c.Status(fiber.StatusInternalServerError).SendString("Render Error: " + txID(c) + "\n")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func (deps *Deps) errorPage(c *fiber.Ctx, status int, message string) error {
	page := deps.page(c, message)
	page.Error = &views.ErrorView{Status: status, Message: message, TxID: txID(c)}
	return deps.render(c, status, "error", page)
}

// NotFound renders the 404 page for any unmatched route.
func NotFound(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin(c, deps, NotFound)
		return deps.errorPage(c, fiber.StatusNotFound, "Page not found")
	}
}

func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
