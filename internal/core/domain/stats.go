package domain

import (
	"fmt"
	"math"
	"time"
)

// DashboardStats are the per-actor aggregates shown on the dashboard.
// Computed at request time from the actor's objectives in the active
// period (or all of them when no period is active); never persisted.
type DashboardStats struct {
	TotalObjectives      int     `json:"total_objectives"`
	CompletedObjectives  int     `json:"completed_objectives"`
	InProgressObjectives int     `json:"in_progress_objectives"`
	AverageProgress      float64 `json:"average_progress"`
}

// TeamStats aggregate the objectives visible to a manager (direct reports)
// or an admin (everything).
type TeamStats struct {
	TotalTeamObjectives int     `json:"total_team_objectives"`
	TeamMembers         int     `json:"team_members"`
	TeamAverageProgress float64 `json:"team_average_progress"`
}

// ComputeDashboardStats aggregates the given objectives. The average over
// an empty set is 0, never NaN.
func ComputeDashboardStats(objectives []*Objective) DashboardStats {
	stats := DashboardStats{TotalObjectives: len(objectives)}
	for _, o := range objectives {
		switch o.Status {
		case ObjectiveCompleted:
			stats.CompletedObjectives++
		case ObjectiveActive:
			stats.InProgressObjectives++
		}
	}
	stats.AverageProgress = averageProgress(objectives)
	return stats
}

// ComputeTeamStats aggregates a team scope, counting distinct owners.
func ComputeTeamStats(objectives []*Objective) TeamStats {
	owners := make(map[string]struct{})
	for _, o := range objectives {
		owners[o.UserID] = struct{}{}
	}
	return TeamStats{
		TotalTeamObjectives: len(objectives),
		TeamMembers:         len(owners),
		TeamAverageProgress: averageProgress(objectives),
	}
}

func averageProgress(objectives []*Objective) float64 {
	if len(objectives) == 0 {
		return 0
	}
	sum := 0
	for _, o := range objectives {
		sum += o.Progress
	}
	return float64(sum) / float64(len(objectives))
}

// DaysRemaining returns the number of days until due, rounded up.
// Negative values mean the deadline has passed.
func DaysRemaining(due time.Time, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// DeadlineLabel renders the display value for a nullable due date.
func DeadlineLabel(due *time.Time, now time.Time) string {
	if due == nil {
		return "no deadline set"
	}
	days := DaysRemaining(*due, now)
	if days < 0 {
		return "overdue"
	}
	if days == 1 {
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", days)
}
