package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/core/ports"
)

// PeriodHandler handles HTTP requests for OKR period management. Listing
// is open to any authenticated user; every mutation is admin-only and
// guarded by the RBAC middleware at the router.
type PeriodHandler struct {
	service ports.PeriodService
}

func NewPeriodHandler(service ports.PeriodService) *PeriodHandler {
	return &PeriodHandler{service: service}
}

type periodRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// toInput parses the date strings. Unparseable dates surface as zero
// values and fail the service's required checks.
func (r periodRequest) toInput() ports.PeriodInput {
	input := ports.PeriodInput{Name: r.Name, Type: r.Type}
	if t, err := parseDate(r.StartDate); err == nil {
		input.StartDate = t
	}
	if t, err := parseDate(r.EndDate); err == nil {
		input.EndDate = t
	}
	return input
}

// List handles GET /v1/periods.
//
// @Summary      List all OKR periods
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Period
// @Failure      401  {object}  errorResponse
// @Router       /v1/periods [get]
func (h *PeriodHandler) List(c echo.Context) error {
	periods, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, periods)
}

// Create handles POST /v1/periods.
//
// @Summary      Create an OKR period
// @Tags         periods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      periodRequest  true  "Period details"
// @Success      201   {object}  domain.Period
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/periods [post]
func (h *PeriodHandler) Create(c echo.Context) error {
	var req periodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	period, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, period)
}

// Update handles PUT /v1/periods/:id.
//
// @Summary      Update an OKR period
// @Tags         periods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Period id"
// @Param        body  body      periodRequest  true  "Period details"
// @Success      200   {object}  domain.Period
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/periods/{id} [put]
func (h *PeriodHandler) Update(c echo.Context) error {
	var req periodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	period, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, period)
}

// Delete handles DELETE /v1/periods/:id. Periods still referenced by
// objectives cannot be removed.
//
// @Summary      Delete an OKR period
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Period id"
// @Success      204  "deleted"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  validationErrorResponse
// @Router       /v1/periods/{id} [delete]
func (h *PeriodHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /v1/periods/:id/activate. Exactly one period is
// active afterwards.
//
// @Summary      Activate an OKR period
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Period id"
// @Success      200  {object}  domain.Period
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/periods/{id}/activate [post]
func (h *PeriodHandler) Activate(c echo.Context) error {
	period, err := h.service.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, period)
}
