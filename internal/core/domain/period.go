package domain

import (
	"errors"
	"time"
)

// PeriodType classifies the length of an OKR period.
type PeriodType string

const (
	PeriodQuarterly PeriodType = "quarterly"
	PeriodYearly    PeriodType = "yearly"
)

var ErrPeriodNotFound = errors.New("period not found")

// Period is a named time window objectives are organised under.
// At most one period is active at a time; activation clears the flag
// on every other period.
type Period struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      PeriodType `json:"type"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ValidPeriodType reports whether t is an allowed period type.
func ValidPeriodType(t string) bool {
	return t == string(PeriodQuarterly) || t == string(PeriodYearly)
}
