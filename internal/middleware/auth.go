package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/asset-service/internal/auth"
)

const OwnerIDKey = "owner_id"

// JWTAuth resolves the owner identity from the bearer token and stores it in
// the request locals under OwnerIDKey.
func JWTAuth(verifier *auth.JWTVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hdr := c.Get("Authorization")
		if hdr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}
		parts := strings.SplitN(hdr, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization"})
		}
		ownerID, err := verifier.VerifyToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals(OwnerIDKey, ownerID)
		return c.Next()
	}
}
