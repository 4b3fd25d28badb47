package ports

import (
	"context"
	"time"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// CreateKeyResultInput carries all data needed to create a key result.
// Progress is forced to 0 server-side, matching objective creation.
type CreateKeyResultInput struct {
	Actor        domain.Actor
	ObjectiveID  string
	Title        string
	Description  string
	Type         string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Status       string
	DueDate      *time.Time
}

// UpdateKeyResultInput carries a full replacement of the mutable fields.
// The parent objective is fixed at creation and cannot be changed.
type UpdateKeyResultInput struct {
	Actor        domain.Actor
	ID           string
	Title        string
	Description  string
	Type         string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Status       string
	Progress     int
	DueDate      *time.Time
}

// ListKeyResultsInput carries the list query for key results.
type ListKeyResultsInput struct {
	Actor  domain.Actor
	Status string
	Page   int
	Limit  int
}

// KeyResultDetail is the full key result view with its parent objective.
type KeyResultDetail struct {
	KeyResult domain.KeyResult
	Deadline  string
	Objective domain.Objective
}

// ListKeyResultsResult is a page of key results.
type ListKeyResultsResult struct {
	Items      []*domain.KeyResult
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// KeyResultService defines use-case operations for key results.
type KeyResultService interface {
	Create(ctx context.Context, input CreateKeyResultInput) (*domain.KeyResult, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*KeyResultDetail, error)
	Update(ctx context.Context, input UpdateKeyResultInput) (*domain.KeyResult, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, input ListKeyResultsInput) (*ListKeyResultsResult, error)
}
