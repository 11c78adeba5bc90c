package domain

import (
	"context"
	"time"
)

// TaskQuery specifies criteria for listing tasks. Results are always
// ordered by creation time descending (newest first).
type TaskQuery struct {
	Owner    string // Owning user's ID (required)
	Category string // Exact category match; empty = all categories
}

// TaskFields holds a partial update for a task. Nil fields are left
// unchanged at the store.
type TaskFields struct {
	Title       *string
	Description *string
	Category    *string
	Complete    *bool
}

// TaskGateway is the remote data API for task rows. Every call is scoped
// to an owner; row-level authorization is enforced server-side and the
// owner constraint here mirrors the store's row filter.
type TaskGateway interface {
	// ListTasks returns the owner's tasks matching the query, newest first.
	ListTasks(ctx context.Context, accessToken string, q TaskQuery) ([]Task, error)

	// InsertTask creates a new task row and returns it with the
	// store-assigned ID and CreatedAt.
	InsertTask(ctx context.Context, accessToken string, task Task) (*Task, error)

	// UpdateTask applies fields to the task with the given id and owner.
	// Updating a row that no longer exists is a no-op, not an error.
	UpdateTask(ctx context.Context, accessToken, id, owner string, fields TaskFields) error

	// DeleteTask removes the task with the given id and owner.
	// Deleting a row that no longer exists is a no-op, not an error.
	DeleteTask(ctx context.Context, accessToken, id, owner string) error
}

// SignUpResult is the outcome of a registration attempt.
type SignUpResult struct {
	Session             *Session // Non-nil when the provider signs the user in immediately
	ConfirmationPending bool     // True when the user must confirm via email first
}

// AuthGateway is the identity provider surface.
type AuthGateway interface {
	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)

	// SignOut revokes the session's tokens at the provider.
	SignOut(ctx context.Context, accessToken string) error

	// Refresh exchanges a refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// SessionStore persists the session across process restarts.
type SessionStore interface {
	// Load returns the stored session, or nil if none is stored.
	Load() (*Session, error)

	// Save stores the session.
	Save(s *Session) error

	// Clear removes the stored session.
	Clear() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
