package usecase

import (
	"context"
	"fmt"

	"minitodo/internal/domain"
)

// CreateTaskInput contains the parameters for creating a task.
type CreateTaskInput struct {
	Session *domain.Session // Authenticated session (required)
	Draft   domain.Draft    // Title is required; Description and Category optional
}

// CreateTaskOutput contains the result of creating a task.
type CreateTaskOutput struct {
	Task *domain.Task // The stored task with server-assigned ID and CreatedAt
}

// CreateTask is the use case for creating a new task.
type CreateTask struct {
	gateway domain.TaskGateway
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(gateway domain.TaskGateway) *CreateTask {
	return &CreateTask{gateway: gateway}
}

// Execute creates a new task from the draft. The draft is normalized here
// as a last line of defense: an empty title never reaches the gateway even
// if the form layer failed to validate.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}

	draft, err := in.Draft.Normalize()
	if err != nil {
		return nil, err
	}

	task := domain.Task{
		Owner:       in.Session.UserID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Complete:    false,
	}

	created, err := uc.gateway.InsertTask(ctx, in.Session.AccessToken, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &CreateTaskOutput{Task: created}, nil
}
