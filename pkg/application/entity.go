// Package application tracks student applications to postings and the
// review pipeline the posting owner moves them through.
//
// Valid status graph:
//
//	pending ──► reviewed ──► interviewing ──► accepted
//	    │           │              │
//	    └───────────┴──────────────┴──► rejected
//
// accepted and rejected are terminal states.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusReviewed     Status = "reviewed"
	StatusInterviewing Status = "interviewing"
	StatusAccepted     Status = "accepted"
	StatusRejected     Status = "rejected"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusPending:      {StatusReviewed, StatusRejected},
	StatusReviewed:     {StatusInterviewing, StatusRejected},
	StatusInterviewing: {StatusAccepted, StatusRejected},
	// accepted and rejected are terminal, no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusReviewed, StatusInterviewing, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

var (
	ErrAlreadyApplied = errors.New("already applied to this posting")
	ErrNotFound       = errors.New("application not found")
)

// Application is one student's application to one posting.
type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	StudentID uuid.UUID
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// denormalized for the owner's list screen
	JobTitle     string
	StudentEmail string
}

// Repository is the persistence port for applications.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	// ListForOwner returns applications to postings owned by ownerID.
	ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]Application, error)
	// OwnsJobOf reports whether ownerID owns the posting the application
	// targets.
	OwnsJobOf(ctx context.Context, ownerID, applicationID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
