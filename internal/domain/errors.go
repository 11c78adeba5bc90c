package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrNotSignedIn   = errors.New("not signed in (run 'minitodo login' first)")
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyFile     = errors.New("file is empty")
	ErrNoTasksInFile = errors.New("no tasks found in file")
	ErrMissingConfig = errors.New("missing gateway configuration (set SUPABASE_URL and SUPABASE_ANON_KEY)")
)

// AuthError is a failure reported by the identity provider. Its message is
// shown to the user verbatim and the call is never retried.
type AuthError struct {
	Message    string
	StatusCode int
}

func (e *AuthError) Error() string {
	return e.Message
}

// GatewayError is a failure of a data-API call. The operation that caused
// it leaves local state unchanged; callers decide whether to surface it.
// Fields are ordered to minimize memory padding.
type GatewayError struct {
	Op         string // Gateway operation, e.g. "list tasks"
	Message    string // Message from the store, may be empty
	StatusCode int
}

// Error returns the store's message without the operation name; callers
// wrap with their own context.
func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return e.Message
}
