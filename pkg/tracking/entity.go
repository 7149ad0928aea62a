package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the two append-only event streams.
type Kind string

const (
	KindView  Kind = "view"  // job detail was opened
	KindClick Kind = "click" // external application link was activated
)

// Event is a single view or click. ViewerID is nil for anonymized
// events; rows are immutable once written and never deleted.
type Event struct {
	JobID      uuid.UUID
	ViewerID   *uuid.UUID
	OccurredAt time.Time
}

// Repository is the persistence port for tracking events.
type Repository interface {
	InsertView(ctx context.Context, e Event) error
	InsertClick(ctx context.Context, e Event) error
	// AnonymizeViewer nulls the viewer reference on all events of a user.
	AnonymizeViewer(ctx context.Context, viewerID uuid.UUID) error
	// AnonymizeOrphans nulls viewer references that no longer resolve to
	// an existing user and returns the number of touched rows.
	AnonymizeOrphans(ctx context.Context) (int64, error)
}
