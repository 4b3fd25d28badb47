package ports

import (
	"context"
	"time"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// PeriodInput carries the fields for creating or updating a period.
type PeriodInput struct {
	Name      string
	Type      string
	StartDate time.Time
	EndDate   time.Time
}

// PeriodService defines the admin-facing period operations. Role
// enforcement happens at the transport layer; listing is open to any
// authenticated user.
type PeriodService interface {
	Create(ctx context.Context, input PeriodInput) (*domain.Period, error)
	Update(ctx context.Context, id string, input PeriodInput) (*domain.Period, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Period, error)
	// Activate flags the period as the single active one.
	Activate(ctx context.Context, id string) (*domain.Period, error)
}
