package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/asset-service/internal/middleware"
	"github.com/fathima-sithara/asset-service/internal/repository"
	"github.com/fathima-sithara/asset-service/internal/services"
)

type Handler struct {
	assets *services.AssetService
	infos  *services.InfoService
	log    *zap.SugaredLogger
}

func NewHandler(assets *services.AssetService, infos *services.InfoService, log *zap.SugaredLogger) *Handler {
	return &Handler{assets: assets, infos: infos, log: log}
}

func ownerID(c *fiber.Ctx) (string, bool) {
	v := c.Locals(middleware.OwnerIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// fail maps service errors onto the response contract. Invalid input and
// not-found are expected outcomes; only unexpected failures are logged, and
// their detail never reaches the caller.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, services.ErrNoImage):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		h.log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
