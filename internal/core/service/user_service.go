package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

// UserService implements admin user management: listing accounts and
// assigning role, manager, and position. Reporting lines are expected to
// be acyclic by convention; no cycle detection is performed.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	verr := domain.NewValidationError()
	if !domain.ValidRole(input.Role) {
		verr.Add("role", "Selected role is invalid.")
	}
	if input.ManagerID != "" {
		if input.ManagerID == user.ID {
			verr.Add("manager_id", "A user cannot be their own manager.")
		} else if _, err := s.users.FindByID(ctx, input.ManagerID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				verr.Add("manager_id", "Selected manager is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user.Role = input.Role
	user.ManagerID = input.ManagerID
	user.Position = input.Position
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user updated")
	return user, nil
}
