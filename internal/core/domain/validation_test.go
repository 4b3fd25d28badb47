package domain

import "testing"

func TestValidationError_FirstMessagePerFieldWins(t *testing.T) {
	verr := NewValidationError()
	verr.Add("title", "first")
	verr.Add("title", "second")

	if verr.Fields["title"] != "first" {
		t.Errorf("got %q, want the first message to stick", verr.Fields["title"])
	}
}

func TestValidationError_ErrNilWhenClean(t *testing.T) {
	verr := NewValidationError()
	if err := verr.Err(); err != nil {
		t.Errorf("empty validation must yield nil, got %v", err)
	}

	verr.Add("status", "bad status")
	if err := verr.Err(); err == nil {
		t.Error("non-empty validation must yield an error")
	}
}

func TestValidationError_ErrorStringIsSorted(t *testing.T) {
	verr := NewValidationError()
	verr.Add("title", "title message")
	verr.Add("due_date", "date message")

	want := "due_date: date message; title: title message"
	if got := verr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
