package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/asset-service/internal/services"
)

// GET /assets?category=&search=&status=
func (h *Handler) ListAssets(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	f := services.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}
	assets, err := h.assets.List(c.Context(), owner, f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(assets)
}

// GET /assets/:id
func (h *Handler) GetAsset(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	a, err := h.assets.Get(c.Context(), owner, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(a)
}

// POST /assets
func (h *Handler) CreateAsset(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	var in services.CreateAssetInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a, err := h.assets.Create(c.Context(), owner, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// PUT /assets/:id
func (h *Handler) UpdateAsset(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	var patch services.AssetPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a, err := h.assets.Update(c.Context(), owner, c.Params("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(a)
}

// DELETE /assets/:id
func (h *Handler) DeleteAsset(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	if err := h.assets.Delete(c.Context(), owner, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "asset deleted"})
}

// POST /assets/:id/image (multipart/form-data 'file')
func (h *Handler) UploadImage(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file missing"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, err)
	}
	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	a, err := h.assets.AttachImage(c.Context(), owner, c.Params("id"), fileHeader.Filename, ct, data)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GET /assets/:id/image/url
func (h *Handler) GetImageURL(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	url, err := h.assets.ImageURL(c.Context(), owner, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
