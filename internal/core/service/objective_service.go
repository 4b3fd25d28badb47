package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ObjectiveService implements objective CRUD with ownership-based
// authorization and write validation.
type ObjectiveService struct {
	objectives ports.ObjectiveRepository
	keyResults ports.KeyResultRepository
	periods    ports.PeriodRepository
	users      ports.UserRepository
	cache      StatsCache
	logger     zerolog.Logger
}

func NewObjectiveService(
	objectives ports.ObjectiveRepository,
	keyResults ports.KeyResultRepository,
	periods ports.PeriodRepository,
	users ports.UserRepository,
	cache StatsCache,
	logger zerolog.Logger,
) *ObjectiveService {
	return &ObjectiveService{
		objectives: objectives,
		keyResults: keyResults,
		periods:    periods,
		users:      users,
		cache:      cache,
		logger:     logger,
	}
}

// Create validates the input and stores a new objective owned by the
// actor. Progress always starts at 0 regardless of what the caller sent.
func (s *ObjectiveService) Create(ctx context.Context, input ports.CreateObjectiveInput) (*domain.Objective, error) {
	if err := s.validateObjective(ctx, input.Title, input.PeriodID, input.Status, input.DueDate, false, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	objective := &domain.Objective{
		Title:       input.Title,
		Description: input.Description,
		UserID:      input.Actor.ID,
		PeriodID:    input.PeriodID,
		Status:      domain.ObjectiveStatus(input.Status),
		Progress:    0,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.objectives.Create(ctx, objective); err != nil {
		s.logger.Error().Err(err).Msg("failed to create objective")
		return nil, err
	}

	s.invalidateStats(ctx, objective.UserID)
	s.logger.Info().Str("objective_id", objective.ID).Str("user_id", input.Actor.ID).Msg("objective created")
	return objective, nil
}

// Get returns the objective with its key results. Owners, admins, and any
// manager may view; everyone else gets ErrForbidden.
func (s *ObjectiveService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.ObjectiveDetail, error) {
	objective, err := s.objectives.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(domain.ActionView, actor, objective.UserID, s.ownerManager(ctx, actor, objective.UserID)) {
		return nil, domain.ErrForbidden
	}

	keyResults, err := s.keyResults.FindByObjective(ctx, objective.ID)
	if err != nil {
		return nil, err
	}

	return &ports.ObjectiveDetail{
		Objective:  *objective,
		Deadline:   domain.DeadlineLabel(objective.DueDate, time.Now().UTC()),
		KeyResults: keyResults,
	}, nil
}

// Update replaces the mutable fields. Only the owner or an admin may
// update; managers are excluded even for their own reports. Past due
// dates are accepted here, unlike on create. Validation runs before the
// ownership check, so an invalid payload reports its field errors even
// when the actor may not touch the record.
func (s *ObjectiveService) Update(ctx context.Context, input ports.UpdateObjectiveInput) (*domain.Objective, error) {
	if err := s.validateObjective(ctx, input.Title, input.PeriodID, input.Status, input.DueDate, true, input.Progress); err != nil {
		return nil, err
	}

	objective, err := s.objectives.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(domain.ActionEdit, input.Actor, objective.UserID, s.ownerManager(ctx, input.Actor, objective.UserID)) {
		return nil, domain.ErrForbidden
	}

	objective.Title = input.Title
	objective.Description = input.Description
	objective.PeriodID = input.PeriodID
	objective.Status = domain.ObjectiveStatus(input.Status)
	objective.Progress = input.Progress
	objective.DueDate = input.DueDate
	objective.UpdatedAt = time.Now().UTC()

	if err := s.objectives.Update(ctx, objective); err != nil {
		s.logger.Error().Err(err).Str("objective_id", objective.ID).Msg("failed to update objective")
		return nil, err
	}

	s.invalidateStats(ctx, objective.UserID)
	return objective, nil
}

// Delete removes the objective and cascades to its key results.
func (s *ObjectiveService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	objective, err := s.objectives.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.Allowed(domain.ActionDelete, actor, objective.UserID, s.ownerManager(ctx, actor, objective.UserID)) {
		return domain.ErrForbidden
	}

	if err := s.objectives.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, objective.UserID)
	s.logger.Info().Str("objective_id", id).Str("deleted_by", actor.ID).Msg("objective deleted")
	return nil
}

// List returns a page of objectives visible to the actor. Employees see
// their own, managers their direct reports plus themselves, admins
// everything. The narrowing is silent, never an error.
func (s *ObjectiveService) List(ctx context.Context, input ports.ListObjectivesInput) (*ports.ListObjectivesResult, error) {
	ownerIDs, err := s.visibleOwners(ctx, input.Actor)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(input.Page, input.Limit)
	items, total, err := s.objectives.List(ctx, ports.ObjectiveFilter{
		OwnerIDs: ownerIDs,
		PeriodID: input.PeriodID,
		Status:   input.Status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListObjectivesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// visibleOwners resolves the actor's list scope to a set of owner ids.
// nil means unrestricted.
func (s *ObjectiveService) visibleOwners(ctx context.Context, actor domain.Actor) ([]string, error) {
	switch domain.ScopeFor(actor.Role) {
	case domain.ScopeAll:
		return nil, nil
	case domain.ScopeTeam:
		reports, err := s.users.FindReports(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(reports)+1)
		for _, r := range reports {
			ids = append(ids, r.ID)
		}
		return append(ids, actor.ID), nil
	default:
		return []string{actor.ID}, nil
	}
}

// ownerManager looks up the owner's manager reference for the permission
// check. Skipped when the actor owns the record.
func (s *ObjectiveService) ownerManager(ctx context.Context, actor domain.Actor, ownerID string) string {
	if ownerID == actor.ID {
		return ""
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return ""
	}
	return owner.ManagerID
}

// validateObjective applies the write rules. The due date must be strictly
// in the future on create only; progress is checked on update only.
func (s *ObjectiveService) validateObjective(ctx context.Context, title, periodID, status string, dueDate *time.Time, isUpdate bool, progress int) error {
	verr := domain.NewValidationError()

	if title == "" {
		verr.Add("title", "Objective title is required.")
	} else if len(title) > 255 {
		verr.Add("title", "Objective title may not exceed 255 characters.")
	}

	if periodID == "" {
		verr.Add("okr_period_id", "Please select an OKR period.")
	} else if _, err := s.periods.FindByID(ctx, periodID); err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			verr.Add("okr_period_id", "Selected OKR period is invalid.")
		} else {
			return err
		}
	}

	if status == "" {
		verr.Add("status", "Please select objective status.")
	} else if !domain.ValidObjectiveStatus(status) {
		verr.Add("status", "Objective status is invalid.")
	}

	if !isUpdate && dueDate != nil && !afterToday(*dueDate) {
		verr.Add("due_date", "Due date must be in the future.")
	}

	if isUpdate {
		if progress < 0 {
			verr.Add("progress", "Progress cannot be less than 0%.")
		} else if progress > 100 {
			verr.Add("progress", "Progress cannot be more than 100%.")
		}
	}

	return verr.Err()
}

func (s *ObjectiveService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate stats cache")
	}
}

// afterToday reports whether the date part of t is strictly after today.
func afterToday(t time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return due.After(today)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
