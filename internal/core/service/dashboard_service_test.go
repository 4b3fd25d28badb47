package service

import (
	"context"
	"testing"
	"time"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

func (f *okrFixture) dashboardService() *DashboardService {
	return NewDashboardService(f.objectives, f.keyResults, f.periods, f.users, f.cache, discardLogger)
}

func (f *okrFixture) seedKeyResult(objectiveID string, title string, updatedAt time.Time) *domain.KeyResult {
	return f.keyResults.add(domain.KeyResult{
		Title:       title,
		ObjectiveID: objectiveID,
		Type:        domain.KeyResultPercentage,
		Status:      domain.KeyResultInProgress,
		CreatedAt:   updatedAt,
		UpdatedAt:   updatedAt,
	})
}

func TestDashboardService_Get_CacheHitSkipsRepos(t *testing.T) {
	f := newOKRFixture()
	f.cache.entries[f.employee.ID] = &ports.Dashboard{Stats: domain.DashboardStats{TotalObjectives: 42}}
	f.seedObjective(f.employee, "Not in the snapshot")
	svc := f.dashboardService()

	dashboard, err := svc.Get(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.Stats.TotalObjectives != 42 {
		t.Errorf("stats total = %d, want the cached snapshot", dashboard.Stats.TotalObjectives)
	}
	if f.cache.sets != 0 {
		t.Error("cache hit must not trigger a write-back")
	}
}

func TestDashboardService_Get_ScopesToActivePeriod(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	f.seedObjective(f.employee, "In active period")
	old := f.periods.add(domain.Period{
		Name:      "Q4 2025",
		Type:      domain.PeriodQuarterly,
		StartDate: time.Now().UTC().AddDate(0, -6, 0),
		EndDate:   time.Now().UTC().AddDate(0, -3, 0),
	})
	f.objectives.add(domain.Objective{
		Title:     "In old period",
		UserID:    f.employee.ID,
		PeriodID:  old.ID,
		Status:    domain.ObjectiveActive,
		CreatedAt: time.Now().UTC(),
	})

	dashboard, err := svc.Get(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dashboard.Objectives) != 1 {
		t.Fatalf("objectives = %d, want only the active-period one", len(dashboard.Objectives))
	}
	if dashboard.ActivePeriod == nil || dashboard.ActivePeriod.ID != f.period.ID {
		t.Error("dashboard must carry the active period")
	}
	if dashboard.Stats.TotalObjectives != 1 {
		t.Errorf("stats total = %d, want 1", dashboard.Stats.TotalObjectives)
	}
}

func TestDashboardService_Get_NoActivePeriodShowsEverything(t *testing.T) {
	f := newOKRFixture()
	f.periods.byID[f.period.ID].IsActive = false
	svc := f.dashboardService()

	f.seedObjective(f.employee, "First")
	f.seedObjective(f.employee, "Second")

	dashboard, err := svc.Get(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.ActivePeriod != nil {
		t.Error("no period is active")
	}
	if len(dashboard.Objectives) != 2 {
		t.Errorf("objectives = %d, want all owned objectives", len(dashboard.Objectives))
	}
}

func TestDashboardService_Get_RecentKeyResultsAcrossPeriods(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	obj := f.seedObjective(f.employee, "Mine")
	base := time.Now().UTC()
	for i := 0; i < 7; i++ {
		f.seedKeyResult(obj.ID, "kr", base.Add(time.Duration(i)*time.Hour))
	}
	other := f.seedObjective(f.outsider, "Not mine")
	f.seedKeyResult(other.ID, "theirs", base.Add(48*time.Hour))

	dashboard, err := svc.Get(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dashboard.RecentKeyResults) != 5 {
		t.Fatalf("recent key results = %d, want capped at 5", len(dashboard.RecentKeyResults))
	}
	for i := 1; i < len(dashboard.RecentKeyResults); i++ {
		prev := dashboard.RecentKeyResults[i-1].UpdatedAt
		if dashboard.RecentKeyResults[i].UpdatedAt.After(prev) {
			t.Fatal("recent key results must be ordered newest first")
		}
	}
	for _, kr := range dashboard.RecentKeyResults {
		if kr.ObjectiveID != obj.ID {
			t.Errorf("key result %s belongs to someone else's objective", kr.ID)
		}
	}
}

func TestDashboardService_Get_TeamStatsFreshOnCacheHit(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	first, err := svc.Get(context.Background(), f.manager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TeamStats == nil || first.TeamStats.TotalTeamObjectives != 0 {
		t.Fatalf("team stats = %+v, want empty before the report writes", first.TeamStats)
	}

	// A report's write only invalidates the report's own cache key. The
	// manager's next request hits their cached slice but must still see
	// the new objective in the team aggregate.
	f.seedObjective(f.employee, "New this quarter")

	second, err := svc.Get(context.Background(), f.manager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.TeamStats == nil || second.TeamStats.TotalTeamObjectives != 1 {
		t.Errorf("team stats = %+v, want the report's new objective counted", second.TeamStats)
	}
}

func TestDashboardService_Get_CachedSnapshotExcludesTeamStats(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	f.seedObjective(f.employee, "Report's work")

	if _, err := svc.Get(context.Background(), f.admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cached := f.cache.entries[f.admin.ID]
	if cached == nil {
		t.Fatal("admin's own slice must be cached")
	}
	if cached.TeamStats != nil {
		t.Error("team stats must not be part of the cached snapshot")
	}
}

func TestDashboardService_Get_EmployeeHasNoTeamStats(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	dashboard, err := svc.Get(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TeamStats != nil {
		t.Error("employees must not receive team statistics")
	}
}

func TestDashboardService_Get_ManagerTeamStatsCoverReportsOnly(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	reportObj := f.seedObjective(f.employee, "Report's work")
	reportObj.Progress = 80
	f.objectives.byID[reportObj.ID].Progress = 80
	f.seedObjective(f.manager, "Manager's own")
	f.seedObjective(f.outsider, "Unrelated")

	dashboard, err := svc.Get(context.Background(), f.manager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TeamStats == nil {
		t.Fatal("managers must receive team statistics")
	}
	if dashboard.TeamStats.TotalTeamObjectives != 1 {
		t.Errorf("team objectives = %d, want only the report's", dashboard.TeamStats.TotalTeamObjectives)
	}
	if dashboard.TeamStats.TeamMembers != 1 {
		t.Errorf("team members = %d, want 1", dashboard.TeamStats.TeamMembers)
	}
	if dashboard.TeamStats.TeamAverageProgress != 80 {
		t.Errorf("team average = %v, want 80", dashboard.TeamStats.TeamAverageProgress)
	}
}

func TestDashboardService_Get_ManagerWithoutReports(t *testing.T) {
	f := newOKRFixture()
	lone := f.users.add(domain.User{Name: "Lone Manager", Email: "lone@x.test", Role: domain.RoleManager})
	svc := f.dashboardService()

	dashboard, err := svc.Get(context.Background(), domain.Actor{ID: lone.ID, Name: lone.Name, Role: lone.Role})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TeamStats == nil {
		t.Fatal("managers always receive a team stats block")
	}
	if dashboard.TeamStats.TotalTeamObjectives != 0 || dashboard.TeamStats.TeamMembers != 0 {
		t.Errorf("empty team must aggregate to zero, got %+v", dashboard.TeamStats)
	}
}

func TestDashboardService_Get_AdminTeamStatsAreGlobal(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	f.seedObjective(f.employee, "A")
	f.seedObjective(f.manager, "B")
	f.seedObjective(f.outsider, "C")

	dashboard, err := svc.Get(context.Background(), f.admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TeamStats == nil {
		t.Fatal("admins must receive team statistics")
	}
	if dashboard.TeamStats.TotalTeamObjectives != 3 {
		t.Errorf("team objectives = %d, want all of them", dashboard.TeamStats.TotalTeamObjectives)
	}
	if dashboard.TeamStats.TeamMembers != 3 {
		t.Errorf("team members = %d, want 3 distinct owners", dashboard.TeamStats.TeamMembers)
	}
}

func TestDashboardService_Get_WritesCache(t *testing.T) {
	f := newOKRFixture()
	svc := f.dashboardService()

	f.seedObjective(f.employee, "Cached")

	if _, err := svc.Get(context.Background(), f.employee); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.cache.sets != 1 {
		t.Errorf("cache writes = %d, want 1", f.cache.sets)
	}
	if f.cache.entries[f.employee.ID] == nil {
		t.Error("computed dashboard must be cached under the actor's id")
	}
}
