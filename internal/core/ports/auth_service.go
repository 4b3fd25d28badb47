package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// AuthService implements registration and login. Registration always
// creates an employee; roles and reporting lines are assigned afterwards
// by an admin (or the seed).
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
