package domain

import (
	"errors"
	"time"
)

// KeyResultType determines how a key result's values are interpreted.
type KeyResultType string

const (
	KeyResultNumber     KeyResultType = "number"
	KeyResultPercentage KeyResultType = "percentage"
	KeyResultBoolean    KeyResultType = "boolean"
)

// KeyResultStatus is the reported state of a key result.
type KeyResultStatus string

const (
	KeyResultNotStarted KeyResultStatus = "not_started"
	KeyResultInProgress KeyResultStatus = "in_progress"
	KeyResultCompleted  KeyResultStatus = "completed"
	KeyResultAtRisk     KeyResultStatus = "at_risk"
)

var ErrKeyResultNotFound = errors.New("key result not found")

// KeyResult is a measurable outcome attached to exactly one objective.
// Its effective owner is the owner of that objective. Current and target
// values carry no relation to Progress; both are stored as given.
type KeyResult struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	ObjectiveID  string          `json:"objective_id"`
	Type         KeyResultType   `json:"type"`
	TargetValue  float64         `json:"target_value"`
	CurrentValue float64         `json:"current_value"`
	Unit         string          `json:"unit,omitempty"`
	Status       KeyResultStatus `json:"status"`
	Progress     int             `json:"progress"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValidKeyResultType reports whether t is an allowed key result type.
func ValidKeyResultType(t string) bool {
	switch KeyResultType(t) {
	case KeyResultNumber, KeyResultPercentage, KeyResultBoolean:
		return true
	}
	return false
}

// ValidKeyResultStatus reports whether s is an allowed key result status.
func ValidKeyResultStatus(s string) bool {
	switch KeyResultStatus(s) {
	case KeyResultNotStarted, KeyResultInProgress, KeyResultCompleted, KeyResultAtRisk:
		return true
	}
	return false
}
