package tracking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// UseCase records engagement events. Recording is fire-and-forget: a
// failed insert is logged and swallowed so it can never disrupt the
// user-facing flow that triggered it.
type UseCase interface {
	RecordView(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID)
	RecordClick(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) RecordView(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) {
	e := Event{JobID: jobID, ViewerID: viewerID, OccurredAt: s.now()}
	if err := s.repo.InsertView(ctx, e); err != nil {
		log.Printf("tracking: record view for job %s: %v", jobID, err)
	}
}

func (s *service) RecordClick(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) {
	e := Event{JobID: jobID, ViewerID: viewerID, OccurredAt: s.now()}
	if err := s.repo.InsertClick(ctx, e); err != nil {
		log.Printf("tracking: record click for job %s: %v", jobID, err)
	}
}
