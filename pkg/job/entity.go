package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobType mirrors the job_type values stored in PostgreSQL.
type JobType string

const (
	TypeInternship JobType = "Internship"
	TypePartTime   JobType = "Part-Time"
	TypeFullTime   JobType = "Full-Time"
)

// ParseJobType converts a raw string to a JobType, returning an error
// for unknown values.
func ParseJobType(s string) (JobType, error) {
	t := JobType(s)
	switch t {
	case TypeInternship, TypePartTime, TypeFullTime:
		return t, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// Status is the moderation state of a posting.
//
//	pending ──► active      (admin approve)
//	pending ──► rejected    (admin reject, note required)
//	active  ──► removed     (owner remove)
//	removed ──► active      (owner reactivate with a new deadline)
//
// "archived" is never stored: it is derived from the deadline, see
// Posting.IsArchived.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
	StatusRemoved  Status = "removed"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusActive, StatusRejected, StatusRemoved:
		return st, nil
	}
	return "", fmt.Errorf("unknown posting status %q", s)
}

// Posting is a job/internship listing with a moderation status.
type Posting struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Company       string
	Industry      string
	JobType       JobType
	Location      string
	SalaryRange   string
	Description   string
	Requirements  []string // ordered
	Skills        []string
	ApplyURL      string
	Deadline      time.Time // date precision
	Status        Status
	RejectionNote string // set only when Status is rejected
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsArchived reports whether the posting's deadline has passed. This is
// the single archived predicate used everywhere; the stored status never
// changes when a deadline elapses.
func (p Posting) IsArchived(now time.Time) bool {
	return !p.Deadline.IsZero() && p.Deadline.Before(now)
}

// VisibleToStudents reports whether students may see the posting: it must
// be approved and not archived.
func (p Posting) VisibleToStudents(now time.Time) bool {
	return p.Status == StatusActive && !p.IsArchived(now)
}

// Repository is the persistence port for postings.
type Repository interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Posting, error)
	// ListActive returns every posting with status active; archived
	// filtering and client-equivalent predicates happen in the use case.
	ListActive(ctx context.Context) ([]Posting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Posting, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Posting, error)
	ListAll(ctx context.Context, limit, offset int) ([]Posting, error)
	Update(ctx context.Context, p Posting) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status, rejectionNote string) error
}
