package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// UpdateUserInput carries the admin-assignable user fields. ManagerID may
// be empty to clear the reporting line. No cycle detection is performed on
// the manager chain.
type UpdateUserInput struct {
	ID        string
	Role      string
	ManagerID string
	Position  string
}

// UserService defines the admin-facing user management operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
}
