package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the authenticated user's id injected by the Auth
// middleware. An empty id means the middleware did not run for this route;
// reject with 401 rather than let an unauthenticated request reach a service.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxRole extracts the authenticated user's role claim.
func ctxRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
