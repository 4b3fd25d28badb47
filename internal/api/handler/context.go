package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// ctxActor extracts the authenticated identity injected by the Auth
// middleware. A missing role means the middleware did not run for this
// route, which is a wiring fault surfaced as 401 rather than a panic.
func ctxActor(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("user_id").(string)
	name, _ := c.Get("name").(string)
	return domain.Actor{ID: id, Name: name, Role: role}, nil
}
