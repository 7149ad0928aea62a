package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusjobs/board/pkg/identity"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	postings map[uuid.UUID]Posting

	setStatusCalls int
	lastStatus     Status
	lastNote       string
	updateCalls    int
}

func newFakeRepo(ps ...Posting) *fakeRepo {
	r := &fakeRepo{postings: map[uuid.UUID]Posting{}}
	for _, p := range ps {
		r.postings[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, p Posting) error {
	r.postings[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Posting, error) {
	p, ok := r.postings[id]
	if !ok {
		return Posting{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (Posting, error) {
	p, ok := r.postings[id]
	if !ok || p.OwnerID != ownerID {
		return Posting{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) ListActive(_ context.Context) ([]Posting, error) {
	var res []Posting
	for _, p := range r.postings {
		if p.Status == StatusActive {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]Posting, error) {
	var res []Posting
	for _, p := range r.postings {
		if p.OwnerID == ownerID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status Status, _, _ int) ([]Posting, error) {
	var res []Posting
	for _, p := range r.postings {
		if p.Status == status {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakeRepo) ListAll(_ context.Context, _, _ int) ([]Posting, error) {
	var res []Posting
	for _, p := range r.postings {
		res = append(res, p)
	}
	return res, nil
}

func (r *fakeRepo) Update(_ context.Context, p Posting) error {
	r.updateCalls++
	r.postings[p.ID] = p
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, status Status, note string) error {
	r.setStatusCalls++
	r.lastStatus = status
	r.lastNote = note
	p := r.postings[id]
	p.Status = status
	p.RejectionNote = note
	r.postings[id] = p
	return nil
}

type allowAllPolicy struct{ allowed bool }

func (p allowAllPolicy) CanPost(context.Context, identity.Role) (bool, error) {
	return p.allowed, nil
}

func newTestService(r Repository, allowed bool) *service {
	return &service{repo: r, policy: allowAllPolicy{allowed: allowed}, now: func() time.Time { return testNow }}
}

func validPosting() Posting {
	return Posting{
		Title:       "Backend Intern",
		Company:     "Acme Corp",
		Industry:    "Technology",
		JobType:     TypeInternship,
		Description: "Work with the platform team on Go services and learn production engineering.",
		Deadline:    testNow.AddDate(0, 1, 0),
	}
}

func TestCreate_NewPostingIsPending(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, true)

	p, err := svc.Create(context.Background(), uuid.New(), identity.RoleRep, validPosting())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)

	// and therefore invisible to the student listing
	visible, err := svc.ListForStudents(context.Background(), Filter{}, SortNewest)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestCreate_PostingDisabledForRole(t *testing.T) {
	svc := newTestService(newFakeRepo(), false)

	_, err := svc.Create(context.Background(), uuid.New(), identity.RoleRep, validPosting())
	assert.ErrorIs(t, err, ErrPostingDisabled)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo(), true)
	owner := uuid.New()

	cases := []struct {
		name   string
		mutate func(*Posting)
	}{
		{"missing title", func(p *Posting) { p.Title = " " }},
		{"missing company", func(p *Posting) { p.Company = "" }},
		{"bad job type", func(p *Posting) { p.JobType = "Contract" }},
		{"short description", func(p *Posting) { p.Description = "too short" }},
		{"missing deadline", func(p *Posting) { p.Deadline = time.Time{} }},
		{"past deadline", func(p *Posting) { p.Deadline = testNow.AddDate(0, 0, -1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := validPosting()
			c.mutate(&p)
			_, err := svc.Create(context.Background(), owner, identity.RoleFaculty, p)
			var verr ErrValidation
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestReject_ShortNoteDoesNotTouchStore(t *testing.T) {
	pending := validPosting()
	pending.ID = uuid.New()
	pending.Status = StatusPending
	repo := newFakeRepo(pending)
	svc := newTestService(repo, true)

	err := svc.Reject(context.Background(), pending.ID, "too short")
	var verr ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, repo.setStatusCalls, "short note must not reach the repository")
}

func TestReject_StoresNote(t *testing.T) {
	pending := validPosting()
	pending.ID = uuid.New()
	pending.Status = StatusPending
	repo := newFakeRepo(pending)
	svc := newTestService(repo, true)

	note := "duplicate of an existing posting"
	require.NoError(t, svc.Reject(context.Background(), pending.ID, note))
	assert.Equal(t, StatusRejected, repo.lastStatus)
	assert.Equal(t, note, repo.lastNote)
}

func TestApprove_OnlyFromPending(t *testing.T) {
	active := validPosting()
	active.ID = uuid.New()
	active.Status = StatusActive
	repo := newFakeRepo(active)
	svc := newTestService(repo, true)

	err := svc.Approve(context.Background(), active.ID)
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, repo.setStatusCalls)
}

func TestReactivate(t *testing.T) {
	owner := uuid.New()

	t.Run("removed posting returns active with new deadline", func(t *testing.T) {
		p := validPosting()
		p.ID = uuid.New()
		p.OwnerID = owner
		p.Status = StatusRemoved
		repo := newFakeRepo(p)
		svc := newTestService(repo, true)

		got, err := svc.Reactivate(context.Background(), owner, p.ID, "2026-12-01")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, got.Status)
		assert.Equal(t, "2026-12-01", got.Deadline.Format("2006-01-02"))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		p := validPosting()
		p.ID = uuid.New()
		p.OwnerID = owner
		p.Status = StatusRemoved
		svc := newTestService(newFakeRepo(p), true)

		_, err := svc.Reactivate(context.Background(), owner, p.ID, "12/01/2026")
		var verr ErrValidation
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("rejects past date", func(t *testing.T) {
		p := validPosting()
		p.ID = uuid.New()
		p.OwnerID = owner
		p.Status = StatusRemoved
		svc := newTestService(newFakeRepo(p), true)

		_, err := svc.Reactivate(context.Background(), owner, p.ID, "2026-08-27")
		var verr ErrValidation
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("rejected posting stays rejected", func(t *testing.T) {
		p := validPosting()
		p.ID = uuid.New()
		p.OwnerID = owner
		p.Status = StatusRejected
		svc := newTestService(newFakeRepo(p), true)

		_, err := svc.Reactivate(context.Background(), owner, p.ID, "2026-12-01")
		var verr ErrValidation
		assert.ErrorAs(t, err, &verr)
	})
}

func TestListForStudents_SkipsArchived(t *testing.T) {
	fresh := validPosting()
	fresh.ID = uuid.New()
	fresh.Status = StatusActive

	expired := validPosting()
	expired.ID = uuid.New()
	expired.Status = StatusActive
	expired.Deadline = testNow.AddDate(0, 0, -1)

	svc := newTestService(newFakeRepo(fresh, expired), true)

	got, err := svc.ListForStudents(context.Background(), Filter{}, SortNewest)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}
