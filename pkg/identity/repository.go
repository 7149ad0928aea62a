package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// UpdateProfile replaces email, names and profile attributes; role and
	// password hash are untouched.
	UpdateProfile(ctx context.Context, user User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Password reset tokens are single-use and expire server-side.
	StoreResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
}

// EventAnonymizer nulls out the viewer reference on tracking events that
// belong to a departing user. Events themselves are never deleted.
type EventAnonymizer interface {
	AnonymizeViewer(ctx context.Context, viewerID uuid.UUID) error
}
