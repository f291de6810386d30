package student

import (
	"context"
	"time"
)

// CreateInput describes a registration request as seen by the store.
// The password is already hashed by the caller; stores never see plaintext.
type CreateInput struct {
	FullName     string
	Email        string
	PasswordHash string
	Now          time.Time
}

// UpdateProfileInput mutates the mutable profile fields of one record.
type UpdateProfileInput struct {
	ID       string
	FullName string
	Email    string
	Now      time.Time
}

// Store is the student persistence boundary.
//
// Consistency contract: every mutation is a single-document write, so the
// backing database's per-document atomicity is sufficient. Concurrent logins
// for the same student race to last-write-wins on the refresh-token slot;
// that is the documented session model, not a defect.
type Store interface {
	// Create inserts a new record with FeesPaid=false.
	// Returns a ConflictError when the email is already registered.
	Create(ctx context.Context, in CreateInput) (Student, error)

	// GetByEmail resolves a record by its exact stored email.
	GetByEmail(ctx context.Context, email string) (Student, error)

	// GetByID resolves a record by id. Malformed ids are ErrInvalidInput.
	GetByID(ctx context.Context, id string) (Student, error)

	// List returns every record. Callers are responsible for sanitizing.
	List(ctx context.Context) ([]Student, error)

	// SetRefreshToken overwrites the session slot (login persists the new
	// refresh token, logout writes SessionCleared).
	SetRefreshToken(ctx context.Context, id, token string, now time.Time) error

	// UpdateProfile sets fullname/email and returns the updated record.
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (Student, error)

	// SetFeesPaid marks the fees as paid and returns the updated record.
	// The transition is one-way and idempotent: true never goes back to false.
	SetFeesPaid(ctx context.Context, id string, now time.Time) (Student, error)
}
