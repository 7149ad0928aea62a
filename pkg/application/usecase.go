package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusjobs/board/pkg/job"
)

// ErrValidation carries a user-facing validation message.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// PostingReader is the slice of the job repository the application flow
// needs: resolving a posting before accepting an application.
type PostingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

type UseCase interface {
	Apply(ctx context.Context, studentID, jobID uuid.UUID) (Application, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, next Status) error
}

type service struct {
	repo     Repository
	postings PostingReader
	now      func() time.Time
}

func NewService(repo Repository, postings PostingReader) UseCase {
	return &service{repo: repo, postings: postings, now: func() time.Time { return time.Now().UTC() }}
}

// Apply accepts an application only for postings students can actually
// see: approved and not past deadline.
func (s *service) Apply(ctx context.Context, studentID, jobID uuid.UUID) (Application, error) {
	p, err := s.postings.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	if !p.VisibleToStudents(s.now()) {
		return Application{}, ErrValidation("posting is not open for applications")
	}
	a := Application{
		ID:        uuid.New(),
		JobID:     jobID,
		StudentID: studentID,
		Status:    StatusPending,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListForOwner(ctx, ownerID, limit, offset)
}

func (s *service) ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByStudent(ctx, studentID, limit, offset)
}

// UpdateStatus moves an application along the pipeline. Only the owner
// of the targeted posting may move it, and only along allowed edges.
func (s *service) UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, next Status) error {
	owns, err := s.repo.OwnsJobOf(ctx, ownerID, applicationID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotFound
	}
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !IsTransitionAllowed(current.Status, next) {
		return ErrValidation(fmt.Sprintf("cannot move application from %s to %s", current.Status, next))
	}
	return s.repo.UpdateStatus(ctx, applicationID, next)
}
