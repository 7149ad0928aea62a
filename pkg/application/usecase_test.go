package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusjobs/board/pkg/job"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	apps    map[uuid.UUID]Application
	owns    map[uuid.UUID]uuid.UUID // applicationID -> owner of its posting
	updates []Status
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: map[uuid.UUID]Application{}, owns: map[uuid.UUID]uuid.UUID{}}
}

func (r *fakeRepo) Create(_ context.Context, a Application) error {
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.StudentID == a.StudentID {
			return ErrAlreadyApplied
		}
	}
	r.apps[a.ID] = a
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) ListForOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]Application, error) {
	return nil, nil
}

func (r *fakeRepo) ListByStudent(_ context.Context, _ uuid.UUID, _, _ int) ([]Application, error) {
	return nil, nil
}

func (r *fakeRepo) OwnsJobOf(_ context.Context, ownerID, applicationID uuid.UUID) (bool, error) {
	return r.owns[applicationID] == ownerID, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	a, ok := r.apps[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	r.apps[id] = a
	r.updates = append(r.updates, status)
	return nil
}

type fakePostings struct {
	byID map[uuid.UUID]job.Posting
}

func (f *fakePostings) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := f.byID[id]
	if !ok {
		return job.Posting{}, job.ErrNotFound
	}
	return p, nil
}

func newTestService(repo *fakeRepo, postings *fakePostings) *service {
	return &service{repo: repo, postings: postings, now: func() time.Time { return testNow }}
}

func activePosting(id uuid.UUID) job.Posting {
	return job.Posting{ID: id, Status: job.StatusActive, Deadline: testNow.AddDate(0, 1, 0)}
}

func TestApply_VisiblePosting(t *testing.T) {
	jobID, studentID := uuid.New(), uuid.New()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakePostings{byID: map[uuid.UUID]job.Posting{jobID: activePosting(jobID)}})

	a, err := svc.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, jobID, a.JobID)
	assert.Equal(t, studentID, a.StudentID)
	assert.Len(t, repo.apps, 1)
}

func TestApply_RejectsClosedPostings(t *testing.T) {
	pendingID, expiredID, removedID := uuid.New(), uuid.New(), uuid.New()
	postings := &fakePostings{byID: map[uuid.UUID]job.Posting{
		pendingID: {ID: pendingID, Status: job.StatusPending, Deadline: testNow.AddDate(0, 1, 0)},
		expiredID: {ID: expiredID, Status: job.StatusActive, Deadline: testNow.AddDate(0, 0, -1)},
		removedID: {ID: removedID, Status: job.StatusRemoved, Deadline: testNow.AddDate(0, 1, 0)},
	}}
	repo := newFakeRepo()
	svc := newTestService(repo, postings)

	for _, id := range []uuid.UUID{pendingID, expiredID, removedID} {
		_, err := svc.Apply(context.Background(), uuid.New(), id)
		var verr ErrValidation
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, repo.apps)
}

func TestApply_Duplicate(t *testing.T) {
	jobID, studentID := uuid.New(), uuid.New()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakePostings{byID: map[uuid.UUID]job.Posting{jobID: activePosting(jobID)}})

	_, err := svc.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), studentID, jobID)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	owner, stranger := uuid.New(), uuid.New()
	appID := uuid.New()
	repo := newFakeRepo()
	repo.apps[appID] = Application{ID: appID, Status: StatusPending}
	repo.owns[appID] = owner
	svc := newTestService(repo, &fakePostings{})

	err := svc.UpdateStatus(context.Background(), stranger, appID, StatusReviewed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.updates)

	err = svc.UpdateStatus(context.Background(), owner, appID, StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusReviewed}, repo.updates)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	owner := uuid.New()
	appID := uuid.New()
	repo := newFakeRepo()
	repo.apps[appID] = Application{ID: appID, Status: StatusPending}
	repo.owns[appID] = owner
	svc := newTestService(repo, &fakePostings{})

	err := svc.UpdateStatus(context.Background(), owner, appID, StatusAccepted)
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, repo.updates)
}
