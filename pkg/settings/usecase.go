package settings

import (
	"context"

	"github.com/campusjobs/board/pkg/identity"
)

// Settings holds the two moderation feature flags. Students apply and
// admins moderate regardless; the flags only gate posting creation.
type Settings struct {
	RepPostingEnabled     bool `json:"rep_posting_enabled"`
	FacultyPostingEnabled bool `json:"faculty_posting_enabled"`
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	RepPostingEnabled     *bool `json:"rep_posting_enabled"`
	FacultyPostingEnabled *bool `json:"faculty_posting_enabled"`
}

// Repository persists the single settings row.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, p Patch) (Settings, error)
}

// UseCase exposes flag reads/writes and the posting gate used by the job
// service.
type UseCase interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, p Patch) (Settings, error)
	CanPost(ctx context.Context, role identity.Role) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Get(ctx context.Context) (Settings, error) { return s.repo.Get(ctx) }

func (s *service) Update(ctx context.Context, p Patch) (Settings, error) {
	return s.repo.Update(ctx, p)
}

func (s *service) CanPost(ctx context.Context, role identity.Role) (bool, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	switch role {
	case identity.RoleRep:
		return cfg.RepPostingEnabled, nil
	case identity.RoleFaculty:
		return cfg.FacultyPostingEnabled, nil
	case identity.RoleAdmin, identity.RoleStaff:
		return true, nil
	default:
		return false, nil
	}
}
