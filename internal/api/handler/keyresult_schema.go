package handler

import (
	"github.com/teamokr/okr-system/internal/core/domain"
)

// createKeyResultRequest carries the writable fields for a new key result.
// Target and current values are required; zero is legal, hence pointers.
type createKeyResultRequest struct {
	ObjectiveID  string   `json:"objective_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	TargetValue  *float64 `json:"target_value" validate:"required"`
	CurrentValue *float64 `json:"current_value" validate:"required"`
	Unit         string   `json:"unit"`
	Status       string   `json:"status"`
	DueDate      string   `json:"due_date"`
}

// updateKeyResultRequest is a full replacement of the mutable fields.
// The parent objective is fixed at creation and absent here.
type updateKeyResultRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	TargetValue  *float64 `json:"target_value" validate:"required"`
	CurrentValue *float64 `json:"current_value" validate:"required"`
	Unit         string   `json:"unit"`
	Status       string   `json:"status"`
	Progress     *int     `json:"progress" validate:"required"`
	DueDate      string   `json:"due_date"`
}

// keyResultDetailResponse is the single key result view with its parent
// objective and a rendered deadline label.
type keyResultDetailResponse struct {
	KeyResult domain.KeyResult `json:"key_result"`
	Deadline  string           `json:"deadline"`
	Objective domain.Objective `json:"objective"`
}

type listKeyResultsResponse struct {
	Data       []*domain.KeyResult `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}
