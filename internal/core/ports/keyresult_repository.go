package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// KeyResultFilter carries the query parameters for listing key results.
// ObjectiveIDs narrows visibility via the parent objective: nil means no
// filter (admin), an empty slice matches nothing.
type KeyResultFilter struct {
	ObjectiveIDs []string
	Status       string
	Page         int // 1-based
	Limit        int
}

// KeyResultRepository defines persistence operations for key results.
type KeyResultRepository interface {
	Create(ctx context.Context, kr *domain.KeyResult) error
	FindByID(ctx context.Context, id string) (*domain.KeyResult, error)
	Update(ctx context.Context, kr *domain.KeyResult) error
	Delete(ctx context.Context, id string) error
	// List returns a page of key results matching filter, newest first,
	// plus the total count.
	List(ctx context.Context, filter KeyResultFilter) ([]*domain.KeyResult, int64, error)
	// FindByObjective returns every key result attached to the objective.
	FindByObjective(ctx context.Context, objectiveID string) ([]*domain.KeyResult, error)
	// FindRecentByObjectives returns at most limit key results belonging to
	// the given objectives, ordered by last update descending.
	FindRecentByObjectives(ctx context.Context, objectiveIDs []string, limit int) ([]*domain.KeyResult, error)
}
