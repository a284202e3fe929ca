package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
)

// getUserIDFromContext returns the authenticated user's ID from the JWT
// claims placed in the context by the auth middleware, or 0 when absent.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}
