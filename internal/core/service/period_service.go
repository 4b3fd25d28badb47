package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

// PeriodService implements period management. Mutations are admin-only,
// enforced at the transport layer.
type PeriodService struct {
	periods    ports.PeriodRepository
	objectives ports.ObjectiveRepository
	logger     zerolog.Logger
}

func NewPeriodService(periods ports.PeriodRepository, objectives ports.ObjectiveRepository, logger zerolog.Logger) *PeriodService {
	return &PeriodService{periods: periods, objectives: objectives, logger: logger}
}

func (s *PeriodService) Create(ctx context.Context, input ports.PeriodInput) (*domain.Period, error) {
	if err := validatePeriod(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := &domain.Period{
		Name:      input.Name,
		Type:      domain.PeriodType(input.Type),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.periods.Create(ctx, period); err != nil {
		s.logger.Error().Err(err).Msg("failed to create period")
		return nil, err
	}

	s.logger.Info().Str("period_id", period.ID).Str("name", period.Name).Msg("period created")
	return period, nil
}

func (s *PeriodService) Update(ctx context.Context, id string, input ports.PeriodInput) (*domain.Period, error) {
	if err := validatePeriod(input); err != nil {
		return nil, err
	}

	period, err := s.periods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	period.Name = input.Name
	period.Type = domain.PeriodType(input.Type)
	period.StartDate = input.StartDate
	period.EndDate = input.EndDate
	period.UpdatedAt = time.Now().UTC()

	if err := s.periods.Update(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// Delete removes a period. Periods still referenced by objectives cannot
// be deleted; the reference check keeps the store free of dangling
// period ids without a cascade.
func (s *PeriodService) Delete(ctx context.Context, id string) error {
	if _, err := s.periods.FindByID(ctx, id); err != nil {
		return err
	}

	objectives, err := s.objectives.FindForOwners(ctx, nil, id)
	if err != nil {
		return err
	}
	if len(objectives) > 0 {
		verr := domain.NewValidationError()
		verr.Add("id", "Period has objectives attached and cannot be deleted.")
		return verr
	}

	return s.periods.Delete(ctx, id)
}

func (s *PeriodService) List(ctx context.Context) ([]*domain.Period, error) {
	return s.periods.List(ctx)
}

// Activate flags the period active and clears the flag everywhere else,
// keeping the single-active-period invariant.
func (s *PeriodService) Activate(ctx context.Context, id string) (*domain.Period, error) {
	if _, err := s.periods.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.periods.SetActive(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("period_id", id).Msg("period activated")
	return s.periods.FindByID(ctx, id)
}

func validatePeriod(input ports.PeriodInput) error {
	verr := domain.NewValidationError()

	if input.Name == "" {
		verr.Add("name", "Period name is required.")
	} else if len(input.Name) > 255 {
		verr.Add("name", "Period name may not exceed 255 characters.")
	}

	if input.Type == "" {
		verr.Add("type", "Please select period type.")
	} else if !domain.ValidPeriodType(input.Type) {
		verr.Add("type", "Period type is invalid.")
	}

	if input.StartDate.IsZero() {
		verr.Add("start_date", "Start date is required.")
	}
	if input.EndDate.IsZero() {
		verr.Add("end_date", "End date is required.")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && !input.EndDate.After(input.StartDate) {
		verr.Add("end_date", "End date must be after start date.")
	}

	return verr.Err()
}
