package usecase

import (
	"context"
	"fmt"

	"minitodo/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Session *domain.Session // Authenticated session (required)
	TaskID  string          // Task to delete (required)
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct{}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	gateway domain.TaskGateway
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(gateway domain.TaskGateway) *DeleteTask {
	return &DeleteTask{gateway: gateway}
}

// Execute deletes the task with the given ID. Deleting a task that is
// already gone is a no-op at the store.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}

	if err := uc.gateway.DeleteTask(ctx, in.Session.AccessToken, in.TaskID, in.Session.UserID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return &DeleteTaskOutput{}, nil
}
