package handler

import (
	"time"

	"github.com/teamokr/okr-system/internal/core/domain"
)

const dateLayout = "2006-01-02"

// parseDueDate converts an optional YYYY-MM-DD string into a time value.
// An empty string means no deadline. A malformed value is a field-level
// validation failure, not a bind error.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		verr := domain.NewValidationError()
		verr.Add("due_date", "Due date is not a valid date.")
		return nil, verr
	}
	return &t, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}
