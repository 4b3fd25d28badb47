package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user_%d", r.seq)
	}
	clone := u
	r.byID[u.ID] = &clone
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(*user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindReports(_ context.Context, managerID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.ManagerID == managerID {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubPeriodRepo struct {
	byID map[string]*domain.Period
	seq  int
}

func newStubPeriodRepo() *stubPeriodRepo {
	return &stubPeriodRepo{byID: make(map[string]*domain.Period)}
}

func (r *stubPeriodRepo) add(p domain.Period) *domain.Period {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("period_%d", r.seq)
	}
	clone := p
	r.byID[p.ID] = &clone
	return &clone
}

func (r *stubPeriodRepo) Create(_ context.Context, p *domain.Period) error {
	created := r.add(*p)
	p.ID = created.ID
	return nil
}

func (r *stubPeriodRepo) Update(_ context.Context, p *domain.Period) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrPeriodNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPeriodRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPeriodNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPeriodRepo) FindByID(_ context.Context, id string) (*domain.Period, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPeriodNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPeriodRepo) List(_ context.Context) ([]*domain.Period, error) {
	out := make([]*domain.Period, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *stubPeriodRepo) FindActive(_ context.Context) (*domain.Period, error) {
	var active *domain.Period
	for _, p := range r.byID {
		if !p.IsActive {
			continue
		}
		if active == nil || p.StartDate.After(active.StartDate) {
			clone := *p
			active = &clone
		}
	}
	return active, nil
}

func (r *stubPeriodRepo) SetActive(_ context.Context, id string) error {
	target, ok := r.byID[id]
	if !ok {
		return domain.ErrPeriodNotFound
	}
	for _, p := range r.byID {
		p.IsActive = false
	}
	target.IsActive = true
	return nil
}

type stubObjectiveRepo struct {
	byID       map[string]*domain.Objective
	keyResults *stubKeyResultRepo // cascade target for Delete
	seq        int
}

func newStubObjectiveRepo(keyResults *stubKeyResultRepo) *stubObjectiveRepo {
	return &stubObjectiveRepo{byID: make(map[string]*domain.Objective), keyResults: keyResults}
}

func (r *stubObjectiveRepo) add(o domain.Objective) *domain.Objective {
	if o.ID == "" {
		r.seq++
		o.ID = fmt.Sprintf("obj_%d", r.seq)
	}
	clone := o
	r.byID[o.ID] = &clone
	return &clone
}

func (r *stubObjectiveRepo) Create(_ context.Context, o *domain.Objective) error {
	created := r.add(*o)
	o.ID = created.ID
	return nil
}

func (r *stubObjectiveRepo) FindByID(_ context.Context, id string) (*domain.Objective, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrObjectiveNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubObjectiveRepo) Update(_ context.Context, o *domain.Objective) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrObjectiveNotFound
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

// Delete mirrors the real cascade: key results vanish with the objective.
func (r *stubObjectiveRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrObjectiveNotFound
	}
	delete(r.byID, id)
	if r.keyResults != nil {
		for krID, kr := range r.keyResults.byID {
			if kr.ObjectiveID == id {
				delete(r.keyResults.byID, krID)
			}
		}
	}
	return nil
}

func (r *stubObjectiveRepo) matches(o *domain.Objective, f ports.ObjectiveFilter) bool {
	if f.OwnerIDs != nil {
		found := false
		for _, id := range f.OwnerIDs {
			if o.UserID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PeriodID != "" && o.PeriodID != f.PeriodID {
		return false
	}
	if f.Status != "" && string(o.Status) != f.Status {
		return false
	}
	return true
}

func (r *stubObjectiveRepo) List(_ context.Context, f ports.ObjectiveFilter) ([]*domain.Objective, int64, error) {
	var matched []*domain.Objective
	for _, o := range r.byID {
		if r.matches(o, f) {
			clone := *o
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if f.Limit <= 0 {
		return matched, total, nil
	}
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.Objective{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubObjectiveRepo) FindForOwners(ctx context.Context, ownerIDs []string, periodID string) ([]*domain.Objective, error) {
	items, _, err := r.List(ctx, ports.ObjectiveFilter{OwnerIDs: ownerIDs, PeriodID: periodID})
	return items, err
}

func (r *stubObjectiveRepo) FindIDsByOwners(ctx context.Context, ownerIDs []string) ([]string, error) {
	items, _, err := r.List(ctx, ports.ObjectiveFilter{OwnerIDs: ownerIDs})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, o := range items {
		ids = append(ids, o.ID)
	}
	return ids, nil
}

type stubKeyResultRepo struct {
	byID map[string]*domain.KeyResult
	seq  int
}

func newStubKeyResultRepo() *stubKeyResultRepo {
	return &stubKeyResultRepo{byID: make(map[string]*domain.KeyResult)}
}

func (r *stubKeyResultRepo) add(kr domain.KeyResult) *domain.KeyResult {
	if kr.ID == "" {
		r.seq++
		kr.ID = fmt.Sprintf("kr_%d", r.seq)
	}
	clone := kr
	r.byID[kr.ID] = &clone
	return &clone
}

func (r *stubKeyResultRepo) Create(_ context.Context, kr *domain.KeyResult) error {
	created := r.add(*kr)
	kr.ID = created.ID
	return nil
}

func (r *stubKeyResultRepo) FindByID(_ context.Context, id string) (*domain.KeyResult, error) {
	kr, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrKeyResultNotFound
	}
	clone := *kr
	return &clone, nil
}

func (r *stubKeyResultRepo) Update(_ context.Context, kr *domain.KeyResult) error {
	if _, ok := r.byID[kr.ID]; !ok {
		return domain.ErrKeyResultNotFound
	}
	clone := *kr
	r.byID[kr.ID] = &clone
	return nil
}

func (r *stubKeyResultRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrKeyResultNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubKeyResultRepo) List(_ context.Context, f ports.KeyResultFilter) ([]*domain.KeyResult, int64, error) {
	var matched []*domain.KeyResult
	for _, kr := range r.byID {
		if f.ObjectiveIDs != nil {
			found := false
			for _, id := range f.ObjectiveIDs {
				if kr.ObjectiveID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Status != "" && string(kr.Status) != f.Status {
			continue
		}
		clone := *kr
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if f.Limit <= 0 {
		return matched, total, nil
	}
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.KeyResult{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubKeyResultRepo) FindByObjective(_ context.Context, objectiveID string) ([]*domain.KeyResult, error) {
	var out []*domain.KeyResult
	for _, kr := range r.byID {
		if kr.ObjectiveID == objectiveID {
			clone := *kr
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubKeyResultRepo) FindRecentByObjectives(_ context.Context, objectiveIDs []string, limit int) ([]*domain.KeyResult, error) {
	ids := make(map[string]struct{}, len(objectiveIDs))
	for _, id := range objectiveIDs {
		ids[id] = struct{}{}
	}
	var out []*domain.KeyResult
	for _, kr := range r.byID {
		if _, ok := ids[kr.ObjectiveID]; ok {
			clone := *kr
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// stubStatsCache records cache traffic for assertions. Entries are copied
// on the way in and out, mirroring the JSON round-trip of the real cache.
type stubStatsCache struct {
	entries     map[string]*ports.Dashboard
	invalidated []string
	sets        int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*ports.Dashboard)}
}

func (c *stubStatsCache) Get(_ context.Context, userID string) (*ports.Dashboard, error) {
	entry, ok := c.entries[userID]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (c *stubStatsCache) Set(_ context.Context, userID string, dashboard *ports.Dashboard) error {
	clone := *dashboard
	c.entries[userID] = &clone
	c.sets++
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}
