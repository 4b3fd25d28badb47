package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

type stubObjectiveService struct {
	listFn func(ctx context.Context, input ports.ListObjectivesInput) (*ports.ListObjectivesResult, error)
}

func (s *stubObjectiveService) Create(ctx context.Context, input ports.CreateObjectiveInput) (*domain.Objective, error) {
	return nil, nil
}

func (s *stubObjectiveService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.ObjectiveDetail, error) {
	return nil, nil
}

func (s *stubObjectiveService) Update(ctx context.Context, input ports.UpdateObjectiveInput) (*domain.Objective, error) {
	return nil, nil
}

func (s *stubObjectiveService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return nil
}

func (s *stubObjectiveService) List(ctx context.Context, input ports.ListObjectivesInput) (*ports.ListObjectivesResult, error) {
	return s.listFn(ctx, input)
}

func authenticatedContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")
	c.Set("name", "Alice")
	c.Set("role", domain.RoleEmployee)
	return c, rec
}

func TestObjectiveHandler_List_PeriodFilterForwarded(t *testing.T) {
	var captured ports.ListObjectivesInput
	stub := &stubObjectiveService{
		listFn: func(ctx context.Context, input ports.ListObjectivesInput) (*ports.ListObjectivesResult, error) {
			captured = input
			return &ports.ListObjectivesResult{Items: []*domain.Objective{}, Page: 1, Limit: 10}, nil
		},
	}
	h := NewObjectiveHandler(stub)

	c, rec := authenticatedContext(http.MethodGet, "/v1/objectives?period=period_q1&status=active&page=2&limit=5")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.PeriodID != "period_q1" {
		t.Errorf("period filter = %q, want %q", captured.PeriodID, "period_q1")
	}
	if captured.Status != "active" {
		t.Errorf("status filter = %q", captured.Status)
	}
	if captured.Page != 2 || captured.Limit != 5 {
		t.Errorf("pagination = page %d limit %d, want 2/5", captured.Page, captured.Limit)
	}
	if captured.Actor.ID != "user_1" || captured.Actor.Role != domain.RoleEmployee {
		t.Errorf("actor = %+v, want the authenticated identity", captured.Actor)
	}
}
