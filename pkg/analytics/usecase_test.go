package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusjobs/board/pkg/analytics"
	"github.com/campusjobs/board/pkg/job"
)

// Zero postings and zero events must yield an all-zero summary without
// any division by zero.
func TestAggregate_Empty(t *testing.T) {
	sum := analytics.Aggregate(nil, 30)

	assert.Equal(t, 0, sum.TotalJobs)
	assert.Equal(t, 0, sum.TotalViews)
	assert.Equal(t, 0, sum.TotalClicks)
	assert.Zero(t, sum.CTR)
	assert.Zero(t, sum.EngagementScore)
	assert.Empty(t, sum.ByJobType)
	assert.Empty(t, sum.SkillDemand)
	assert.Empty(t, sum.TopJobs)
}

// Postings without any views still must not divide by zero.
func TestAggregate_JobsWithoutViews(t *testing.T) {
	stats := []analytics.JobStats{
		{Title: "a", JobType: job.TypeInternship},
		{Title: "b", JobType: job.TypeFullTime},
	}
	sum := analytics.Aggregate(stats, 30)

	assert.Equal(t, 2, sum.TotalJobs)
	assert.Zero(t, sum.CTR)
	assert.Zero(t, sum.EngagementScore)
}

func TestAggregate_Totals(t *testing.T) {
	stats := []analytics.JobStats{
		{Title: "a", JobType: job.TypeInternship, Industry: "Technology", Views: 100, Clicks: 10},
		{Title: "b", JobType: job.TypeInternship, Industry: "Finance", Views: 50, Clicks: 5},
		{Title: "c", JobType: job.TypeFullTime, Industry: "Technology", Views: 50, Clicks: 0},
	}
	sum := analytics.Aggregate(stats, 30)

	assert.Equal(t, 3, sum.TotalJobs)
	assert.Equal(t, 200, sum.TotalViews)
	assert.Equal(t, 15, sum.TotalClicks)
	assert.InDelta(t, 0.075, sum.CTR, 1e-9)
	assert.Greater(t, sum.EngagementScore, 0.0)
	assert.LessOrEqual(t, sum.EngagementScore, 100.0)
}

func TestAggregate_Breakdowns(t *testing.T) {
	stats := []analytics.JobStats{
		{Title: "a", JobType: job.TypeInternship, Industry: "Technology", Views: 100, Clicks: 10},
		{Title: "b", JobType: job.TypeInternship, Industry: "Finance", Views: 50, Clicks: 5},
		{Title: "c", JobType: job.TypeFullTime, Industry: "Technology", Views: 50, Clicks: 0},
	}
	sum := analytics.Aggregate(stats, 30)

	require.Len(t, sum.ByJobType, 2)
	byKey := map[string]analytics.Breakdown{}
	for _, b := range sum.ByJobType {
		byKey[b.Key] = b
	}
	intern := byKey["Internship"]
	assert.Equal(t, 2, intern.Jobs)
	assert.Equal(t, 150, intern.Views)
	assert.Equal(t, 15, intern.Clicks)
	assert.InDelta(t, 0.1, intern.CTR, 1e-9)

	full := byKey["Full-Time"]
	assert.Equal(t, 1, full.Jobs)
	assert.Zero(t, full.CTR, "no views means zero CTR, not NaN")

	require.Len(t, sum.ByIndustry, 2)
}

// Skill engagement rates are computed from real counts.
func TestAggregate_SkillDemand(t *testing.T) {
	stats := []analytics.JobStats{
		{Title: "a", JobType: job.TypeInternship, Skills: []string{"Go", "SQL"}, Views: 100, Clicks: 25},
		{Title: "b", JobType: job.TypeFullTime, Skills: []string{"Go"}, Views: 100, Clicks: 5},
	}
	sum := analytics.Aggregate(stats, 30)

	require.Len(t, sum.SkillDemand, 2)
	// Go aggregates both postings and sorts first on views
	goSkill := sum.SkillDemand[0]
	assert.Equal(t, "Go", goSkill.Skill)
	assert.Equal(t, 2, goSkill.Jobs)
	assert.Equal(t, 200, goSkill.Views)
	assert.InDelta(t, 0.15, goSkill.EngagementRate, 1e-9)

	sql := sum.SkillDemand[1]
	assert.Equal(t, "SQL", sql.Skill)
	assert.InDelta(t, 0.25, sql.EngagementRate, 1e-9)
}

func TestAggregate_TopJobs(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	var stats []analytics.JobStats
	for i := 0; i < 8; i++ {
		stats = append(stats, analytics.JobStats{
			Title:     "job",
			JobType:   job.TypeInternship,
			Views:     i * 10,
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}
	sum := analytics.Aggregate(stats, 30)

	require.Len(t, sum.TopJobs, 5)
	assert.Equal(t, 70, sum.TopJobs[0].Views)
	for i := 1; i < len(sum.TopJobs); i++ {
		assert.GreaterOrEqual(t, sum.TopJobs[i-1].Views, sum.TopJobs[i].Views)
	}
}

// The score is bounded by construction: each term is in [0,1].
func TestAggregate_ScoreBounds(t *testing.T) {
	stats := []analytics.JobStats{
		{Title: "viral", JobType: job.TypeFullTime, Views: 1000, Clicks: 1000},
	}
	sum := analytics.Aggregate(stats, 30)
	assert.LessOrEqual(t, sum.EngagementScore, 100.0)
	assert.Greater(t, sum.EngagementScore, 0.0)
}
