package job

import (
	"sort"
	"strings"
)

// Filter is the student-facing listing predicate: free-text match on
// title/company, job-type membership and industry equality. Zero values
// mean "no constraint".
type Filter struct {
	Search   string
	JobTypes []JobType
	Industry string
}

// Matches reports whether the posting satisfies every set predicate.
func (f Filter) Matches(p Posting) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Company), needle) {
			return false
		}
	}
	if len(f.JobTypes) > 0 {
		found := false
		for _, t := range f.JobTypes {
			if p.JobType == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Industry != "" && !strings.EqualFold(f.Industry, p.Industry) {
		return false
	}
	return true
}

// Sort selects the listing order.
type Sort string

const (
	SortNewest   Sort = "newest"   // newest-first by creation time
	SortDeadline Sort = "deadline" // soonest deadline first
)

// SortPostings orders the slice in place. Unknown values fall back to
// newest-first.
func SortPostings(ps []Posting, by Sort) {
	switch by {
	case SortDeadline:
		sort.SliceStable(ps, func(i, j int) bool {
			if ps[i].Deadline.Equal(ps[j].Deadline) {
				return ps[i].CreatedAt.After(ps[j].CreatedAt)
			}
			return ps[i].Deadline.Before(ps[j].Deadline)
		})
	default:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		})
	}
}
