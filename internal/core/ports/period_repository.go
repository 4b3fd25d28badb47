package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// PeriodRepository defines persistence operations for OKR periods.
type PeriodRepository interface {
	Create(ctx context.Context, p *domain.Period) error
	Update(ctx context.Context, p *domain.Period) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Period, error)
	// List returns all periods ordered by start date descending.
	List(ctx context.Context) ([]*domain.Period, error)
	// FindActive returns the active period, or (nil, nil) when none is
	// flagged. Should several rows be flagged (legacy data), the most
	// recently started one wins.
	FindActive(ctx context.Context) (*domain.Period, error)
	// SetActive flags the given period active and clears the flag on all
	// others in the same write.
	SetActive(ctx context.Context, id string) error
}
