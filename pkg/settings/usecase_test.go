package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusjobs/board/pkg/identity"
)

type memoryRepo struct {
	stored Settings
}

func (r *memoryRepo) Get(_ context.Context) (Settings, error) { return r.stored, nil }

func (r *memoryRepo) Update(_ context.Context, p Patch) (Settings, error) {
	if p.RepPostingEnabled != nil {
		r.stored.RepPostingEnabled = *p.RepPostingEnabled
	}
	if p.FacultyPostingEnabled != nil {
		r.stored.FacultyPostingEnabled = *p.FacultyPostingEnabled
	}
	return r.stored, nil
}

func TestCanPost(t *testing.T) {
	cases := []struct {
		name string
		cfg  Settings
		role identity.Role
		want bool
	}{
		{"rep enabled", Settings{RepPostingEnabled: true}, identity.RoleRep, true},
		{"rep disabled", Settings{RepPostingEnabled: false}, identity.RoleRep, false},
		{"faculty enabled", Settings{FacultyPostingEnabled: true}, identity.RoleFaculty, true},
		{"faculty disabled", Settings{FacultyPostingEnabled: false}, identity.RoleFaculty, false},
		{"faculty flag does not open rep", Settings{FacultyPostingEnabled: true}, identity.RoleRep, false},
		{"admin always", Settings{}, identity.RoleAdmin, true},
		{"staff always", Settings{}, identity.RoleStaff, true},
		{"student never", Settings{RepPostingEnabled: true, FacultyPostingEnabled: true}, identity.RoleStudent, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			uc := NewService(&memoryRepo{stored: c.cfg})
			got, err := uc.CanPost(context.Background(), c.role)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo := &memoryRepo{stored: Settings{RepPostingEnabled: true, FacultyPostingEnabled: true}}
	uc := NewService(repo)

	off := false
	got, err := uc.Update(context.Background(), Patch{RepPostingEnabled: &off})
	require.NoError(t, err)
	assert.False(t, got.RepPostingEnabled)
	assert.True(t, got.FacultyPostingEnabled, "untouched flag keeps its value")
}
