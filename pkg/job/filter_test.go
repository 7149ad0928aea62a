package job_test

import (
	"strings"
	"testing"
	"time"

	"github.com/campusjobs/board/pkg/job"
)

func samplePostings() []job.Posting {
	return []job.Posting{
		{Title: "Backend Intern", Company: "Acme Corp", Industry: "Technology", JobType: job.TypeInternship},
		{Title: "Data Analyst", Company: "Globex", Industry: "Finance", JobType: job.TypeFullTime},
		{Title: "Campus Barista", Company: "BeanThere", Industry: "Hospitality", JobType: job.TypePartTime},
		{Title: "ML Engineer", Company: "Acme Corp", Industry: "Technology", JobType: job.TypeFullTime},
	}
}

// The listing must equal exactly the set of postings whose job_type is in
// the filter set (or the set is empty) and whose title or company
// contains the search term case-insensitively, regardless of sort order.
func TestFilterMatches_Invariant(t *testing.T) {
	postings := samplePostings()

	cases := []struct {
		name   string
		filter job.Filter
	}{
		{"empty filter", job.Filter{}},
		{"search title", job.Filter{Search: "intern"}},
		{"search company", job.Filter{Search: "ACME"}},
		{"one type", job.Filter{JobTypes: []job.JobType{job.TypeFullTime}}},
		{"two types", job.Filter{JobTypes: []job.JobType{job.TypeInternship, job.TypePartTime}}},
		{"type and search", job.Filter{Search: "acme", JobTypes: []job.JobType{job.TypeFullTime}}},
		{"industry", job.Filter{Industry: "technology"}},
		{"no match", job.Filter{Search: "nonexistent"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, p := range postings {
				want := referenceMatch(c.filter, p)
				if got := c.filter.Matches(p); got != want {
					t.Errorf("Matches(%q) = %v, want %v", p.Title, got, want)
				}
			}
		})
	}
}

// referenceMatch restates the filter contract independently of the
// implementation.
func referenceMatch(f job.Filter, p job.Posting) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(p.Title), s)
		inCompany := strings.Contains(strings.ToLower(p.Company), s)
		if !inTitle && !inCompany {
			return false
		}
	}
	if len(f.JobTypes) > 0 {
		ok := false
		for _, jt := range f.JobTypes {
			if jt == p.JobType {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if f.Industry != "" && !strings.EqualFold(f.Industry, p.Industry) {
		return false
	}
	return true
}

func TestSortPostings_Newest(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	ps := []job.Posting{
		{Title: "old", CreatedAt: base},
		{Title: "newest", CreatedAt: base.AddDate(0, 0, 10)},
		{Title: "middle", CreatedAt: base.AddDate(0, 0, 5)},
	}
	job.SortPostings(ps, job.SortNewest)
	got := []string{ps[0].Title, ps[1].Title, ps[2].Title}
	want := []string{"newest", "middle", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortPostings_Deadline(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ps := []job.Posting{
		{Title: "late", Deadline: base.AddDate(0, 1, 0)},
		{Title: "soon", Deadline: base},
		{Title: "mid", Deadline: base.AddDate(0, 0, 10)},
	}
	job.SortPostings(ps, job.SortDeadline)
	got := []string{ps[0].Title, ps[1].Title, ps[2].Title}
	want := []string{"soon", "mid", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
