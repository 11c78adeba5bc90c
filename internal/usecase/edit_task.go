package usecase

import (
	"context"
	"fmt"

	"minitodo/internal/domain"
)

// EditTaskInput contains the parameters for editing a task's text fields.
// The complete flag is changed only through ToggleTask.
type EditTaskInput struct {
	Session *domain.Session // Authenticated session (required)
	Draft   domain.Draft    // Draft with TaskID set; Title required
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct{}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	gateway domain.TaskGateway
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(gateway domain.TaskGateway) *EditTask {
	return &EditTask{gateway: gateway}
}

// Execute submits the draft's title, description, and category for the
// referenced task. Editing a task that was deleted concurrently is a
// no-op at the store; the follow-up refresh makes that visible.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}
	if !in.Draft.IsEdit() {
		return nil, domain.ErrTaskNotFound
	}

	draft, err := in.Draft.Normalize()
	if err != nil {
		return nil, err
	}

	fields := domain.TaskFields{
		Title:       &draft.Title,
		Description: &draft.Description,
		Category:    &draft.Category,
	}
	if err := uc.gateway.UpdateTask(ctx, in.Session.AccessToken, in.Draft.TaskID, in.Session.UserID, fields); err != nil {
		return nil, fmt.Errorf("edit task: %w", err)
	}
	return &EditTaskOutput{}, nil
}
