package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRangeDays = 30
	maxRangeDays     = 365
	topJobsCount     = 5
)

// Engagement score weights. The score is a fixed linear combination of
// click-through rate, the share of postings with any views, and average
// clicks per job clamped at 10, scaled to 0-100.
const (
	weightCTR        = 0.4
	weightEngagement = 0.3
	weightAvgClicks  = 0.3
	avgClicksClamp   = 10.0
)

// UseCase produces engagement summaries for owners and admins.
type UseCase interface {
	// ForOwner reports on the postings of one faculty/rep user.
	ForOwner(ctx context.Context, ownerID uuid.UUID, days int) (Summary, error)
	// ForAll reports across every owner (admin dashboard).
	ForAll(ctx context.Context, days int) (Summary, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ForOwner(ctx context.Context, ownerID uuid.UUID, days int) (Summary, error) {
	return s.build(ctx, ownerID, days)
}

func (s *service) ForAll(ctx context.Context, days int) (Summary, error) {
	return s.build(ctx, uuid.Nil, days)
}

func (s *service) build(ctx context.Context, ownerID uuid.UUID, days int) (Summary, error) {
	if days <= 0 {
		days = defaultRangeDays
	}
	if days > maxRangeDays {
		days = maxRangeDays
	}
	now := s.now()
	since := now.AddDate(0, 0, -days)

	stats, err := s.repo.StatsByOwner(ctx, ownerID, since)
	if err != nil {
		return Summary{}, err
	}
	weekday, err := s.repo.ViewsByWeekday(ctx, ownerID, since)
	if err != nil {
		return Summary{}, err
	}

	sum := Aggregate(stats, days)
	sum.ViewsByWeekday = weekday
	sum.GeneratedAt = now
	return sum, nil
}

// Aggregate reduces the per-job stats to a Summary in a single pass over
// the input. Every ratio is guarded so empty inputs yield zeros rather
// than NaN.
func Aggregate(stats []JobStats, days int) Summary {
	sum := Summary{
		RangeDays:   days,
		ByJobType:   []Breakdown{},
		ByIndustry:  []Breakdown{},
		SkillDemand: []SkillDemand{},
		TopJobs:     []JobStats{},
	}

	byType := map[string]*Breakdown{}
	byIndustry := map[string]*Breakdown{}
	bySkill := map[string]*SkillDemand{}
	jobsWithViews := 0

	for _, js := range stats {
		sum.TotalJobs++
		sum.TotalViews += js.Views
		sum.TotalClicks += js.Clicks
		if js.Views > 0 {
			jobsWithViews++
		}

		t := byType[string(js.JobType)]
		if t == nil {
			t = &Breakdown{Key: string(js.JobType)}
			byType[string(js.JobType)] = t
		}
		t.Jobs++
		t.Views += js.Views
		t.Clicks += js.Clicks

		ind := js.Industry
		if ind == "" {
			ind = "Other"
		}
		i := byIndustry[ind]
		if i == nil {
			i = &Breakdown{Key: ind}
			byIndustry[ind] = i
		}
		i.Jobs++
		i.Views += js.Views
		i.Clicks += js.Clicks

		for _, skill := range js.Skills {
			sd := bySkill[skill]
			if sd == nil {
				sd = &SkillDemand{Skill: skill}
				bySkill[skill] = sd
			}
			sd.Jobs++
			sd.Views += js.Views
			sd.Clicks += js.Clicks
		}
	}

	sum.CTR = ratio(sum.TotalClicks, sum.TotalViews)
	sum.EngagementScore = engagementScore(sum.TotalJobs, sum.TotalViews, sum.TotalClicks, jobsWithViews)

	for _, b := range byType {
		b.CTR = ratio(b.Clicks, b.Views)
		sum.ByJobType = append(sum.ByJobType, *b)
	}
	for _, b := range byIndustry {
		b.CTR = ratio(b.Clicks, b.Views)
		sum.ByIndustry = append(sum.ByIndustry, *b)
	}
	for _, sd := range bySkill {
		sd.EngagementRate = ratio(sd.Clicks, sd.Views)
		sum.SkillDemand = append(sum.SkillDemand, *sd)
	}
	sort.Slice(sum.ByJobType, func(i, j int) bool { return sum.ByJobType[i].Key < sum.ByJobType[j].Key })
	sort.Slice(sum.ByIndustry, func(i, j int) bool { return sum.ByIndustry[i].Key < sum.ByIndustry[j].Key })
	sort.Slice(sum.SkillDemand, func(i, j int) bool {
		if sum.SkillDemand[i].Views != sum.SkillDemand[j].Views {
			return sum.SkillDemand[i].Views > sum.SkillDemand[j].Views
		}
		return sum.SkillDemand[i].Skill < sum.SkillDemand[j].Skill
	})

	top := make([]JobStats, len(stats))
	copy(top, stats)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Views != top[j].Views {
			return top[i].Views > top[j].Views
		}
		return top[i].CreatedAt.After(top[j].CreatedAt)
	})
	if len(top) > topJobsCount {
		top = top[:topJobsCount]
	}
	sum.TopJobs = top

	return sum
}

func engagementScore(totalJobs, totalViews, totalClicks, jobsWithViews int) float64 {
	if totalJobs == 0 {
		return 0
	}
	ctr := ratio(totalClicks, totalViews)
	engagementRate := float64(jobsWithViews) / float64(totalJobs)
	avgClicks := float64(totalClicks) / float64(totalJobs)
	clamped := math.Min(avgClicks/avgClicksClamp, 1)

	score := (weightCTR*ctr + weightEngagement*engagementRate + weightAvgClicks*clamped) * 100
	return math.Round(score*10) / 10
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
