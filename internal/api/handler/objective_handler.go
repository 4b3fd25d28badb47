package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/api/metrics"
	"github.com/teamokr/okr-system/internal/core/ports"
)

// ObjectiveHandler handles HTTP requests for objective operations.
type ObjectiveHandler struct {
	service ports.ObjectiveService
}

func NewObjectiveHandler(service ports.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{service: service}
}

// Create handles POST /v1/objectives.
//
// @Summary      Create a new objective
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createObjectiveRequest  true  "Objective details"
// @Success      201   {object}  domain.Objective
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/objectives [post]
func (h *ObjectiveHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createObjectiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	objective, err := h.service.Create(c.Request().Context(), ports.CreateObjectiveInput{
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		PeriodID:    req.PeriodID,
		Status:      req.Status,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}

	metrics.ObjectivesCreatedTotal.WithLabelValues(string(objective.Status)).Inc()
	return c.JSON(http.StatusCreated, objective)
}

// Get handles GET /v1/objectives/:id.
//
// @Summary      Get an objective with its key results
// @Tags         objectives
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Objective id"
// @Success      200  {object}  objectiveDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/objectives/{id} [get]
func (h *ObjectiveHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, objectiveDetailResponse{
		Objective:  detail.Objective,
		Deadline:   detail.Deadline,
		KeyResults: detail.KeyResults,
	})
}

// Update handles PUT /v1/objectives/:id.
//
// @Summary      Update an objective
// @Tags         objectives
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Objective id"
// @Param        body  body      updateObjectiveRequest  true  "Objective details"
// @Success      200   {object}  domain.Objective
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/objectives/{id} [put]
func (h *ObjectiveHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateObjectiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	objective, err := h.service.Update(c.Request().Context(), ports.UpdateObjectiveInput{
		Actor:       actor,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		PeriodID:    req.PeriodID,
		Status:      req.Status,
		Progress:    *req.Progress,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, objective)
}

// Delete handles DELETE /v1/objectives/:id. Key results cascade.
//
// @Summary      Delete an objective and its key results
// @Tags         objectives
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Objective id"
// @Success      204  "deleted"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/objectives/{id} [delete]
func (h *ObjectiveHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/objectives. Visibility follows the actor's role;
// period and status are optional filters.
//
// @Summary      List visible objectives
// @Tags         objectives
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "Filter by period id"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listObjectivesResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/objectives [get]
func (h *ObjectiveHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListObjectivesInput{
		Actor:    actor,
		PeriodID: c.QueryParam("period"),
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listObjectivesResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
