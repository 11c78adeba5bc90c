package usecase

import (
	"context"
	"fmt"

	"minitodo/internal/domain"
)

// ToggleTaskInput contains the parameters for toggling completion.
type ToggleTaskInput struct {
	Session  *domain.Session // Authenticated session (required)
	TaskID   string          // Task to toggle (required)
	Complete bool            // Current value; the stored value becomes its negation
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct{}

// ToggleTask is the use case for flipping a task's completion flag.
type ToggleTask struct {
	gateway domain.TaskGateway
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(gateway domain.TaskGateway) *ToggleTask {
	return &ToggleTask{gateway: gateway}
}

// Execute sets complete to the negation of the caller-supplied current
// value. Toggling twice restores the original value.
func (uc *ToggleTask) Execute(ctx context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}

	next := !in.Complete
	fields := domain.TaskFields{Complete: &next}
	if err := uc.gateway.UpdateTask(ctx, in.Session.AccessToken, in.TaskID, in.Session.UserID, fields); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return &ToggleTaskOutput{}, nil
}
