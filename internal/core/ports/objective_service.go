package ports

import (
	"context"
	"time"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// CreateObjectiveInput carries all data needed to create an objective.
// Progress is absent on purpose: it is forced to 0 server-side.
type CreateObjectiveInput struct {
	Actor       domain.Actor
	Title       string
	Description string
	PeriodID    string
	Status      string
	DueDate     *time.Time
}

// UpdateObjectiveInput carries a full replacement of the mutable fields.
// Unlike create, a past due date is accepted on update.
type UpdateObjectiveInput struct {
	Actor       domain.Actor
	ID          string
	Title       string
	Description string
	PeriodID    string
	Status      string
	Progress    int
	DueDate     *time.Time
}

// ListObjectivesInput carries the list query. Visibility is resolved from
// the actor's role; period and status are optional filters.
type ListObjectivesInput struct {
	Actor    domain.Actor
	PeriodID string
	Status   string
	Page     int
	Limit    int
}

// ObjectiveDetail is the full objective view including its key results.
type ObjectiveDetail struct {
	Objective  domain.Objective
	Deadline   string
	KeyResults []*domain.KeyResult
}

// ListObjectivesResult is a page of objectives.
type ListObjectivesResult struct {
	Items      []*domain.Objective
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ObjectiveService defines use-case operations for objectives.
type ObjectiveService interface {
	Create(ctx context.Context, input CreateObjectiveInput) (*domain.Objective, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*ObjectiveDetail, error)
	Update(ctx context.Context, input UpdateObjectiveInput) (*domain.Objective, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, input ListObjectivesInput) (*ListObjectivesResult, error)
}
