package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/api/metrics"
	"github.com/teamokr/okr-system/internal/core/ports"
)

// KeyResultHandler handles HTTP requests for key result operations.
type KeyResultHandler struct {
	service ports.KeyResultService
}

func NewKeyResultHandler(service ports.KeyResultService) *KeyResultHandler {
	return &KeyResultHandler{service: service}
}

// Create handles POST /v1/key-results.
//
// @Summary      Create a new key result
// @Tags         key-results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createKeyResultRequest  true  "Key result details"
// @Success      201   {object}  domain.KeyResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/key-results [post]
func (h *KeyResultHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createKeyResultRequest
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

	kr, err := h.service.Create(c.Request().Context(), ports.CreateKeyResultInput{
		Actor:        actor,
		ObjectiveID:  req.ObjectiveID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		TargetValue:  *req.TargetValue,
		CurrentValue: *req.CurrentValue,
		Unit:         req.Unit,
		Status:       req.Status,
		DueDate:      dueDate,
	})
	if err != nil {
		return err
	}

	metrics.KeyResultsCreatedTotal.WithLabelValues(string(kr.Type)).Inc()
	return c.JSON(http.StatusCreated, kr)
}

// Get handles GET /v1/key-results/:id.
//
// @Summary      Get a key result with its parent objective
// @Tags         key-results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key result id"
// @Success      200  {object}  keyResultDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/key-results/{id} [get]
func (h *KeyResultHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, keyResultDetailResponse{
		KeyResult: detail.KeyResult,
		Deadline:  detail.Deadline,
		Objective: detail.Objective,
	})
}

// Update handles PUT /v1/key-results/:id.
//
// @Summary      Update a key result
// @Tags         key-results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Key result id"
// @Param        body  body      updateKeyResultRequest  true  "Key result details"
// @Success      200   {object}  domain.KeyResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/key-results/{id} [put]
func (h *KeyResultHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateKeyResultRequest
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

	kr, err := h.service.Update(c.Request().Context(), ports.UpdateKeyResultInput{
		Actor:        actor,
		ID:           c.Param("id"),
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		TargetValue:  *req.TargetValue,
		CurrentValue: *req.CurrentValue,
		Unit:         req.Unit,
		Status:       req.Status,
		Progress:     *req.Progress,
		DueDate:      dueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, kr)
}

// Delete handles DELETE /v1/key-results/:id.
//
// @Summary      Delete a key result
// @Tags         key-results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Key result id"
// @Success      204  "deleted"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/key-results/{id} [delete]
func (h *KeyResultHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/key-results. Visibility follows the parent
// objectives the actor may see.
//
// @Summary      List visible key results
// @Tags         key-results
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listKeyResultsResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/key-results [get]
func (h *KeyResultHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListKeyResultsInput{
		Actor:  actor,
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listKeyResultsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
