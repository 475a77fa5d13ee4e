package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/asset-service/internal/services"
)

// POST /assets/:id/info
func (h *Handler) UpsertInfo(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	var in services.InfoInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	info, err := h.infos.UpsertInfo(c.Context(), owner, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// GET /assets/:id/info
func (h *Handler) GetInfo(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	info, err := h.infos.GetInfo(c.Context(), owner, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(info)
}

// PUT /info/:id
func (h *Handler) UpdateInfo(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	var patch services.InfoPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	info, err := h.infos.UpdateInfo(c.Context(), owner, c.Params("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(info)
}

// GET /assets/:id/logs
func (h *Handler) ListLogs(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	logs, err := h.infos.ListLogs(c.Context(), owner, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(logs)
}
