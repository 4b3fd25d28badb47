package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

// KeyResultService implements key result CRUD. A key result's effective
// owner is the owner of its parent objective; every permission check goes
// through that objective.
type KeyResultService struct {
	keyResults ports.KeyResultRepository
	objectives ports.ObjectiveRepository
	users      ports.UserRepository
	cache      StatsCache
	logger     zerolog.Logger
}

func NewKeyResultService(
	keyResults ports.KeyResultRepository,
	objectives ports.ObjectiveRepository,
	users ports.UserRepository,
	cache StatsCache,
	logger zerolog.Logger,
) *KeyResultService {
	return &KeyResultService{
		keyResults: keyResults,
		objectives: objectives,
		users:      users,
		cache:      cache,
		logger:     logger,
	}
}

// Create validates the input and attaches a new key result to the target
// objective. Only the objective's owner or an admin may attach; progress
// starts at 0.
func (s *KeyResultService) Create(ctx context.Context, input ports.CreateKeyResultInput) (*domain.KeyResult, error) {
	verr := domain.NewValidationError()
	s.validateFields(verr, input.Title, input.Type, input.TargetValue, input.CurrentValue, input.Unit, input.Status)

	var objective *domain.Objective
	if input.ObjectiveID == "" {
		verr.Add("objective_id", "Please select an objective.")
	} else {
		var err error
		objective, err = s.objectives.FindByID(ctx, input.ObjectiveID)
		if err != nil {
			if errors.Is(err, domain.ErrObjectiveNotFound) {
				verr.Add("objective_id", "Selected objective is invalid.")
			} else {
				return nil, err
			}
		}
	}

	if input.DueDate != nil && !afterToday(*input.DueDate) {
		verr.Add("due_date", "Due date must be in the future.")
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	if !domain.Allowed(domain.ActionEdit, input.Actor, objective.UserID, s.ownerManager(ctx, input.Actor, objective.UserID)) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	keyResult := &domain.KeyResult{
		Title:        input.Title,
		Description:  input.Description,
		ObjectiveID:  objective.ID,
		Type:         domain.KeyResultType(input.Type),
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Unit:         input.Unit,
		Status:       domain.KeyResultStatus(input.Status),
		Progress:     0,
		DueDate:      input.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.keyResults.Create(ctx, keyResult); err != nil {
		s.logger.Error().Err(err).Msg("failed to create key result")
		return nil, err
	}

	s.invalidateStats(ctx, objective.UserID)
	s.logger.Info().Str("key_result_id", keyResult.ID).Str("objective_id", objective.ID).Msg("key result created")
	return keyResult, nil
}

// Get returns the key result with its parent objective. View permission
// mirrors objectives: owner, admin, or any manager.
func (s *KeyResultService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.KeyResultDetail, error) {
	keyResult, objective, err := s.findWithObjective(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(domain.ActionView, actor, objective.UserID, s.ownerManager(ctx, actor, objective.UserID)) {
		return nil, domain.ErrForbidden
	}

	return &ports.KeyResultDetail{
		KeyResult: *keyResult,
		Deadline:  domain.DeadlineLabel(keyResult.DueDate, time.Now().UTC()),
		Objective: *objective,
	}, nil
}

// Update replaces the mutable fields. Owner of the parent objective or
// admin only; past due dates are accepted on update. Validation runs
// before the ownership check, so an invalid payload reports its field
// errors even when the actor may not touch the record.
func (s *KeyResultService) Update(ctx context.Context, input ports.UpdateKeyResultInput) (*domain.KeyResult, error) {
	verr := domain.NewValidationError()
	s.validateFields(verr, input.Title, input.Type, input.TargetValue, input.CurrentValue, input.Unit, input.Status)
	if input.Progress < 0 {
		verr.Add("progress", "Progress cannot be less than 0%.")
	} else if input.Progress > 100 {
		verr.Add("progress", "Progress cannot be more than 100%.")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	keyResult, objective, err := s.findWithObjective(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(domain.ActionEdit, input.Actor, objective.UserID, s.ownerManager(ctx, input.Actor, objective.UserID)) {
		return nil, domain.ErrForbidden
	}

	keyResult.Title = input.Title
	keyResult.Description = input.Description
	keyResult.Type = domain.KeyResultType(input.Type)
	keyResult.TargetValue = input.TargetValue
	keyResult.CurrentValue = input.CurrentValue
	keyResult.Unit = input.Unit
	keyResult.Status = domain.KeyResultStatus(input.Status)
	keyResult.Progress = input.Progress
	keyResult.DueDate = input.DueDate
	keyResult.UpdatedAt = time.Now().UTC()

	if err := s.keyResults.Update(ctx, keyResult); err != nil {
		s.logger.Error().Err(err).Str("key_result_id", keyResult.ID).Msg("failed to update key result")
		return nil, err
	}

	s.invalidateStats(ctx, objective.UserID)
	return keyResult, nil
}

// Delete removes a single key result.
func (s *KeyResultService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	_, objective, err := s.findWithObjective(ctx, id)
	if err != nil {
		return err
	}

	if !domain.Allowed(domain.ActionDelete, actor, objective.UserID, s.ownerManager(ctx, actor, objective.UserID)) {
		return domain.ErrForbidden
	}

	if err := s.keyResults.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, objective.UserID)
	s.logger.Info().Str("key_result_id", id).Str("deleted_by", actor.ID).Msg("key result deleted")
	return nil
}

// List returns a page of key results visible to the actor, resolved
// through the owners of their parent objectives.
func (s *KeyResultService) List(ctx context.Context, input ports.ListKeyResultsInput) (*ports.ListKeyResultsResult, error) {
	objectiveIDs, err := s.visibleObjectives(ctx, input.Actor)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(input.Page, input.Limit)
	items, total, err := s.keyResults.List(ctx, ports.KeyResultFilter{
		ObjectiveIDs: objectiveIDs,
		Status:       input.Status,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListKeyResultsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *KeyResultService) findWithObjective(ctx context.Context, id string) (*domain.KeyResult, *domain.Objective, error) {
	keyResult, err := s.keyResults.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	objective, err := s.objectives.FindByID(ctx, keyResult.ObjectiveID)
	if err != nil {
		return nil, nil, err
	}
	return keyResult, objective, nil
}

// visibleObjectives resolves the actor's scope to objective ids. nil means
// unrestricted (admin).
func (s *KeyResultService) visibleObjectives(ctx context.Context, actor domain.Actor) ([]string, error) {
	var ownerIDs []string
	switch domain.ScopeFor(actor.Role) {
	case domain.ScopeAll:
		return nil, nil
	case domain.ScopeTeam:
		reports, err := s.users.FindReports(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range reports {
			ownerIDs = append(ownerIDs, r.ID)
		}
		ownerIDs = append(ownerIDs, actor.ID)
	default:
		ownerIDs = []string{actor.ID}
	}
	return s.objectives.FindIDsByOwners(ctx, ownerIDs)
}

func (s *KeyResultService) ownerManager(ctx context.Context, actor domain.Actor, ownerID string) string {
	if ownerID == actor.ID {
		return ""
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return ""
	}
	return owner.ManagerID
}

func (s *KeyResultService) validateFields(verr *domain.ValidationError, title, krType string, target, current float64, unit, status string) {
	if title == "" {
		verr.Add("title", "Key result title is required.")
	} else if len(title) > 255 {
		verr.Add("title", "Key result title may not exceed 255 characters.")
	}

	if krType == "" {
		verr.Add("type", "Please select key result type.")
	} else if !domain.ValidKeyResultType(krType) {
		verr.Add("type", "Key result type is invalid.")
	}

	if target < 0 {
		verr.Add("target_value", "Target value must be at least 0.")
	}
	if current < 0 {
		verr.Add("current_value", "Current value must be at least 0.")
	}
	if len(unit) > 50 {
		verr.Add("unit", "Unit may not exceed 50 characters.")
	}

	if status == "" {
		verr.Add("status", "Please select key result status.")
	} else if !domain.ValidKeyResultStatus(status) {
		verr.Add("status", "Key result status is invalid.")
	}
}

func (s *KeyResultService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate stats cache")
	}
}
