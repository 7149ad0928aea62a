package application_test

import (
	"testing"

	"github.com/campusjobs/board/pkg/application"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "reviewed", "interviewing", "accepted", "rejected"}
	for _, s := range valid {
		got, err := application.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"PENDING", "hired", ""} {
		if _, err := application.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestIsTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from application.Status
		to   application.Status
	}{
		{application.StatusPending, application.StatusReviewed},
		{application.StatusReviewed, application.StatusInterviewing},
		{application.StatusInterviewing, application.StatusAccepted},
	}
	for _, c := range cases {
		if !application.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_RejectionFromNonTerminals(t *testing.T) {
	nonTerminals := []application.Status{
		application.StatusPending,
		application.StatusReviewed,
		application.StatusInterviewing,
	}
	for _, from := range nonTerminals {
		if !application.IsTransitionAllowed(from, application.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s -> rejected) should be true", from)
		}
	}
}

func TestIsTransitionAllowed_TerminalStates(t *testing.T) {
	all := []application.Status{
		application.StatusPending,
		application.StatusReviewed,
		application.StatusInterviewing,
		application.StatusAccepted,
		application.StatusRejected,
	}
	for _, terminal := range []application.Status{application.StatusAccepted, application.StatusRejected} {
		for _, to := range all {
			if application.IsTransitionAllowed(terminal, to) {
				t.Errorf("IsTransitionAllowed(%s -> %s) should be false, %s is terminal", terminal, to, terminal)
			}
		}
	}
}

func TestIsTransitionAllowed_NoSkipping(t *testing.T) {
	cases := []struct {
		from application.Status
		to   application.Status
	}{
		{application.StatusPending, application.StatusInterviewing},
		{application.StatusPending, application.StatusAccepted},
		{application.StatusReviewed, application.StatusAccepted},
		{application.StatusReviewed, application.StatusPending}, // no going back
	}
	for _, c := range cases {
		if application.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false", c.from, c.to)
		}
	}
}
