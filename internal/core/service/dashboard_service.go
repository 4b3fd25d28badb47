package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

const recentKeyResultLimit = 5

// StatsCache abstracts the dashboard cache (Redis). Get returns
// (nil, nil) on a miss; failures are reported but never fail a request.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*ports.Dashboard, error)
	Set(ctx context.Context, userID string, dashboard *ports.Dashboard) error
	Invalidate(ctx context.Context, userID string) error
}

// DashboardService computes the per-actor aggregates at request time.
// Aggregation itself is pure (domain package); this service only gathers
// the scoped records and consults the cache.
type DashboardService struct {
	objectives ports.ObjectiveRepository
	keyResults ports.KeyResultRepository
	periods    ports.PeriodRepository
	users      ports.UserRepository
	cache      StatsCache
	logger     zerolog.Logger
}

func NewDashboardService(
	objectives ports.ObjectiveRepository,
	keyResults ports.KeyResultRepository,
	periods ports.PeriodRepository,
	users ports.UserRepository,
	cache StatsCache,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		objectives: objectives,
		keyResults: keyResults,
		periods:    periods,
		users:      users,
		cache:      cache,
		logger:     logger,
	}
}

// Get assembles the dashboard for the actor: own objectives scoped to the
// active period (all of them when none is active), derived statistics, the
// five most recently updated key results across all own objectives, and
// team statistics for managers and admins. Only the actor's own slice is
// cached; team stats aggregate other users' records, whose writes
// invalidate their own keys and not this one, so they are recomputed on
// every request.
func (s *DashboardService) Get(ctx context.Context, actor domain.Actor) (*ports.Dashboard, error) {
	dashboard, err := s.ownDashboard(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleManager || actor.Role == domain.RoleAdmin {
		teamStats, err := s.teamStats(ctx, actor)
		if err != nil {
			return nil, err
		}
		dashboard.TeamStats = teamStats
	}

	return dashboard, nil
}

// ownDashboard returns the cached per-user slice of the dashboard, or
// computes and caches it. TeamStats is always nil here.
func (s *DashboardService) ownDashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("stats cache read failed, computing")
		} else if cached != nil {
			return cached, nil
		}
	}

	activePeriod, err := s.periods.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	periodID := ""
	if activePeriod != nil {
		periodID = activePeriod.ID
	}

	objectives, err := s.objectives.FindForOwners(ctx, []string{userID}, periodID)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentKeyResults(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &ports.Dashboard{
		ActivePeriod:     activePeriod,
		Stats:            domain.ComputeDashboardStats(objectives),
		Objectives:       objectives,
		RecentKeyResults: recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, dashboard); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to write stats cache")
		}
	}

	return dashboard, nil
}

// recentKeyResults returns the latest-updated key results across every
// objective the actor owns, regardless of period.
func (s *DashboardService) recentKeyResults(ctx context.Context, userID string) ([]*domain.KeyResult, error) {
	objectiveIDs, err := s.objectives.FindIDsByOwners(ctx, []string{userID})
	if err != nil {
		return nil, err
	}
	if len(objectiveIDs) == 0 {
		return []*domain.KeyResult{}, nil
	}
	return s.keyResults.FindRecentByObjectives(ctx, objectiveIDs, recentKeyResultLimit)
}

// teamStats scopes to the manager's direct reports; admins are unscoped
// and aggregate every objective in the system.
func (s *DashboardService) teamStats(ctx context.Context, actor domain.Actor) (*domain.TeamStats, error) {
	var ownerIDs []string
	if actor.Role == domain.RoleManager {
		reports, err := s.users.FindReports(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ownerIDs = make([]string, 0, len(reports))
		for _, r := range reports {
			ownerIDs = append(ownerIDs, r.ID)
		}
		if len(ownerIDs) == 0 {
			stats := domain.ComputeTeamStats(nil)
			return &stats, nil
		}
	}

	teamObjectives, err := s.objectives.FindForOwners(ctx, ownerIDs, "")
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeTeamStats(teamObjectives)
	return &stats, nil
}
