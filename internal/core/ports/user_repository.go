package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
	// FindReports returns the users whose manager reference equals managerID.
	FindReports(ctx context.Context, managerID string) ([]*domain.User, error)
}
