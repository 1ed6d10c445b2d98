package utils

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// GetUserIDFromContext returns the authenticated user's id placed in the
// echo context by the JWT middleware.
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", errors.New("user identity missing from request context")
	}
	return userID, nil
}

// IsAdminFromContext reports whether the authenticated user carries the
// admin flag. Absent flag means not admin.
func IsAdminFromContext(c echo.Context) bool {
	isAdmin, ok := c.Get("isAdmin").(bool)
	return ok && isAdmin
}
