package domain

import (
	"errors"
	"time"
)

// ObjectiveStatus is the lifecycle state of an objective. Unlike a state
// machine there are no transition constraints; any enumerated value may be
// set at any time.
type ObjectiveStatus string

const (
	ObjectiveDraft     ObjectiveStatus = "draft"
	ObjectiveActive    ObjectiveStatus = "active"
	ObjectiveCompleted ObjectiveStatus = "completed"
	ObjectiveCancelled ObjectiveStatus = "cancelled"
)

var ErrObjectiveNotFound = errors.New("objective not found")
var ErrForbidden = errors.New("access forbidden")

// Objective is a qualitative goal owned by a user and scoped to a period.
// Progress is caller-supplied on update (forced to 0 on create) and is
// never derived from the key results underneath it.
type Objective struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	UserID      string          `json:"user_id"`
	PeriodID    string          `json:"okr_period_id"`
	Status      ObjectiveStatus `json:"status"`
	Progress    int             `json:"progress"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ValidObjectiveStatus reports whether s is an allowed objective status.
func ValidObjectiveStatus(s string) bool {
	switch ObjectiveStatus(s) {
	case ObjectiveDraft, ObjectiveActive, ObjectiveCompleted, ObjectiveCancelled:
		return true
	}
	return false
}
