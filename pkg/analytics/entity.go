package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campusjobs/board/pkg/job"
)

// JobStats is one posting with its view/click counts inside the
// requested date range.
type JobStats struct {
	JobID     uuid.UUID   `json:"job_id"`
	Title     string      `json:"title"`
	JobType   job.JobType `json:"job_type"`
	Industry  string      `json:"industry"`
	Skills    []string    `json:"skills"`
	CreatedAt time.Time   `json:"created_at"`
	Views     int         `json:"views"`
	Clicks    int         `json:"clicks"`
}

// Breakdown aggregates a group of postings sharing a dimension value
// (job type or industry).
type Breakdown struct {
	Key    string  `json:"key"`
	Jobs   int     `json:"jobs"`
	Views  int     `json:"views"`
	Clicks int     `json:"clicks"`
	CTR    float64 `json:"ctr"`
}

// SkillDemand aggregates postings that list a given skill. The
// engagement rate is the real clicks/views ratio of those postings.
type SkillDemand struct {
	Skill          string  `json:"skill"`
	Jobs           int     `json:"jobs"`
	Views          int     `json:"views"`
	Clicks         int     `json:"clicks"`
	EngagementRate float64 `json:"engagement_rate"`
}

// Summary is the full engagement report for one owner and date range.
type Summary struct {
	RangeDays   int       `json:"range_days"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalJobs   int     `json:"total_jobs"`
	TotalViews  int     `json:"total_views"`
	TotalClicks int     `json:"total_clicks"`
	CTR         float64 `json:"ctr"`
	// EngagementScore is a 0-100 heuristic, see Aggregate.
	EngagementScore float64 `json:"engagement_score"`

	ByJobType      []Breakdown   `json:"by_job_type"`
	ByIndustry     []Breakdown   `json:"by_industry"`
	SkillDemand    []SkillDemand `json:"skill_demand"`
	ViewsByWeekday [7]int        `json:"views_by_weekday"` // Sunday first
	TopJobs        []JobStats    `json:"top_jobs"`
}

// Repository is the read port feeding the aggregation. A Nil owner id
// means "all owners" (admin view).
type Repository interface {
	StatsByOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]JobStats, error)
	ViewsByWeekday(ctx context.Context, ownerID uuid.UUID, since time.Time) ([7]int, error)
}
