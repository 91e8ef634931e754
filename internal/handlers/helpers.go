package handlers

import (
	"pixvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// extractClaims pulls the authenticated user claims set by the auth
// middleware.
func extractClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
