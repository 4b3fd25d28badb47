package handler

import (
	"github.com/teamokr/okr-system/internal/core/domain"
)

// --- Request / Response types ---

// createObjectiveRequest carries the writable fields for a new objective.
// Progress is not accepted: new objectives always start at 0. Dates use
// the YYYY-MM-DD form.
type createObjectiveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PeriodID    string `json:"okr_period_id"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

// updateObjectiveRequest is a full replacement of the mutable fields.
// Progress is required here; zero is a legal value, hence the pointer.
type updateObjectiveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PeriodID    string `json:"okr_period_id"`
	Status      string `json:"status"`
	Progress    *int   `json:"progress" validate:"required"`
	DueDate     string `json:"due_date"`
}

// objectiveDetailResponse is the single-objective view with its key
// results and a rendered deadline label.
type objectiveDetailResponse struct {
	Objective  domain.Objective    `json:"objective"`
	Deadline   string              `json:"deadline"`
	KeyResults []*domain.KeyResult `json:"key_results"`
}

type listObjectivesResponse struct {
	Data       []*domain.Objective `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}
