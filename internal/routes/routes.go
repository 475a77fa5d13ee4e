package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/fathima-sithara/asset-service/internal/handlers"
	"github.com/fathima-sithara/asset-service/internal/metrics"
)

// Setup registers the HTTP surface. authMW resolves the owner identity;
// /healthz and /metrics stay unauthenticated.
func Setup(app *fiber.App, h *handlers.Handler, authMW fiber.Handler) {
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Content-Type,Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", metrics.Handler())

	assets := app.Group("/assets", authMW)
	assets.Get("/", h.ListAssets)
	assets.Post("/", h.CreateAsset)
	assets.Get("/:id", h.GetAsset)
	assets.Put("/:id", h.UpdateAsset)
	assets.Delete("/:id", h.DeleteAsset)
	assets.Post("/:id/image", h.UploadImage)
	assets.Get("/:id/image/url", h.GetImageURL)
	assets.Post("/:id/info", h.UpsertInfo)
	assets.Get("/:id/info", h.GetInfo)
	assets.Get("/:id/logs", h.ListLogs)

	app.Put("/info/:id", authMW, h.UpdateInfo)
}
