package job_test

import (
	"testing"
	"time"

	"github.com/campusjobs/board/pkg/job"
)

func TestParseStatus(t *testing.T) {
	valid := []string{"pending", "active", "rejected", "removed"}
	for _, s := range valid {
		got, err := job.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
	for _, s := range []string{"archived", "ACTIVE", ""} {
		if _, err := job.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseJobType(t *testing.T) {
	valid := []string{"Internship", "Part-Time", "Full-Time"}
	for _, s := range valid {
		got, err := job.ParseJobType(s)
		if err != nil {
			t.Errorf("ParseJobType(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseJobType(%q) = %q, want %q", s, got, s)
		}
	}
	for _, s := range []string{"internship", "Contract", ""} {
		if _, err := job.ParseJobType(s); err == nil {
			t.Errorf("ParseJobType(%q) expected error, got nil", s)
		}
	}
}

func TestIsArchived(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		deadline time.Time
		want     bool
	}{
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"tomorrow", now.AddDate(0, 0, 1), false},
		{"far future", now.AddDate(1, 0, 0), false},
		{"no deadline", time.Time{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := job.Posting{Deadline: c.deadline}
			if got := p.IsArchived(now); got != c.want {
				t.Errorf("IsArchived() = %v, want %v", got, c.want)
			}
		})
	}
}

// A posting whose stored status is still active but whose deadline has
// passed is archived, and therefore hidden from students.
func TestVisibleToStudents_ExpiredActivePosting(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	p := job.Posting{Status: job.StatusActive, Deadline: now.AddDate(0, 0, -1)}

	if !p.IsArchived(now) {
		t.Error("expired posting should be archived")
	}
	if p.VisibleToStudents(now) {
		t.Error("archived posting must not be visible to students")
	}
}

func TestVisibleToStudents_ByStatus(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 0, 7)

	cases := []struct {
		status job.Status
		want   bool
	}{
		{job.StatusPending, false},
		{job.StatusActive, true},
		{job.StatusRejected, false},
		{job.StatusRemoved, false},
	}
	for _, c := range cases {
		p := job.Posting{Status: c.status, Deadline: deadline}
		if got := p.VisibleToStudents(now); got != c.want {
			t.Errorf("VisibleToStudents(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}
