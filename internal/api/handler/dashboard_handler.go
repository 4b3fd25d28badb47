package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/core/ports"
)

// DashboardHandler serves the aggregated dashboard view.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get handles GET /v1/dashboard. Managers and admins additionally receive
// team statistics; employees only their own numbers.
//
// @Summary      Get the dashboard for the current user
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Dashboard
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	dashboard, err := h.service.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}
