package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/core/ports"
)

// UserHandler handles the admin-only user management endpoints. The RBAC
// middleware guards both routes at the router.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Role      string `json:"role" validate:"required"`
	ManagerID string `json:"manager_id"`
	Position  string `json:"position"`
}

// List handles GET /v1/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /v1/users/:id. Role, reporting line, and position
// are the only admin-assignable fields; an empty manager_id clears the
// reporting line.
//
// @Summary      Update a user's role and reporting line
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Assignable fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), ports.UpdateUserInput{
		ID:        c.Param("id"),
		Role:      req.Role,
		ManagerID: req.ManagerID,
		Position:  req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
