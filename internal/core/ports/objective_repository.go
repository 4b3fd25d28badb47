package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// ObjectiveFilter carries the query parameters for listing objectives.
// OwnerIDs narrows visibility for RBAC: nil means no owner filter (admin),
// an empty slice matches nothing.
type ObjectiveFilter struct {
	OwnerIDs []string
	PeriodID string
	Status   string
	Page     int // 1-based
	Limit    int
}

// ObjectiveRepository defines persistence operations for objectives.
type ObjectiveRepository interface {
	Create(ctx context.Context, o *domain.Objective) error
	FindByID(ctx context.Context, id string) (*domain.Objective, error)
	Update(ctx context.Context, o *domain.Objective) error
	// Delete removes the objective and all of its key results. The cascade
	// is atomic: either both are removed or neither is.
	Delete(ctx context.Context, id string) error
	// List returns a page of objectives matching filter, newest first,
	// plus the total count.
	List(ctx context.Context, filter ObjectiveFilter) ([]*domain.Objective, int64, error)
	// FindForOwners returns all objectives owned by the given users,
	// optionally narrowed to one period. Used by aggregation; unpaginated.
	FindForOwners(ctx context.Context, ownerIDs []string, periodID string) ([]*domain.Objective, error)
	// FindIDsByOwners returns the ids of every objective owned by the given
	// users. nil means all owners.
	FindIDsByOwners(ctx context.Context, ownerIDs []string) ([]string, error)
}
