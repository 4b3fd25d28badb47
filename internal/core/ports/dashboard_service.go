package ports

import (
	"context"

	"github.com/teamokr/okr-system/internal/core/domain"
)

// Dashboard is the aggregated read model for one actor: their objectives
// in the active period, derived statistics, the five most recently updated
// key results, and team statistics for managers and admins.
type Dashboard struct {
	ActivePeriod     *domain.Period        `json:"active_period,omitempty"`
	Stats            domain.DashboardStats `json:"stats"`
	Objectives       []*domain.Objective   `json:"objectives"`
	RecentKeyResults []*domain.KeyResult   `json:"recent_key_results"`
	TeamStats        *domain.TeamStats     `json:"team_stats,omitempty"`
}

// DashboardService computes the dashboard for an actor.
type DashboardService interface {
	Get(ctx context.Context, actor domain.Actor) (*Dashboard, error)
}
