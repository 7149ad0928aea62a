package studentprofile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Preferences is the student's interest sheet, one row per student,
// replaced wholesale on every save.
type Preferences struct {
	StudentID           uuid.UUID `json:"-"`
	Interests           []string  `json:"interests"`
	Skills              []string  `json:"skills"`
	PreferredJobTypes   []string  `json:"preferred_job_types"`
	PreferredIndustries []string  `json:"preferred_industries"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Repository persists preferences.
type Repository interface {
	Upsert(ctx context.Context, p Preferences) error
	// Get returns ok=false when the student never saved preferences.
	Get(ctx context.Context, studentID uuid.UUID) (Preferences, bool, error)
}

type UseCase interface {
	Save(ctx context.Context, p Preferences) (Preferences, error)
	Get(ctx context.Context, studentID uuid.UUID) (Preferences, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Save(ctx context.Context, p Preferences) (Preferences, error) {
	p.Interests = dedupe(p.Interests)
	p.Skills = dedupe(p.Skills)
	p.PreferredJobTypes = dedupe(p.PreferredJobTypes)
	p.PreferredIndustries = dedupe(p.PreferredIndustries)
	p.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// Get never reports "missing": a student without saved preferences gets
// empty sets back.
func (s *service) Get(ctx context.Context, studentID uuid.UUID) (Preferences, error) {
	p, ok, err := s.repo.Get(ctx, studentID)
	if err != nil {
		return Preferences{}, err
	}
	if !ok {
		return Preferences{
			StudentID:           studentID,
			Interests:           []string{},
			Skills:              []string{},
			PreferredJobTypes:   []string{},
			PreferredIndustries: []string{},
		}, nil
	}
	return p, nil
}

// dedupe trims entries, drops empties and keeps the first occurrence of
// each value (case-insensitive).
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
