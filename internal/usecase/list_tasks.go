// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"minitodo/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Session  *domain.Session // Authenticated session (required)
	Category string          // Category filter; domain.CategoryAll or empty = no filtering
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []domain.Task // The session owner's tasks, newest first
}

// ListTasks is the use case for fetching the filtered task collection.
type ListTasks struct {
	gateway domain.TaskGateway
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(gateway domain.TaskGateway) *ListTasks {
	return &ListTasks{gateway: gateway}
}

// Execute fetches the session owner's tasks matching the given input.
// The owner scoping here mirrors what the store enforces server-side; the
// client never filters by owner after the fact.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}

	q := domain.TaskQuery{Owner: in.Session.UserID}
	if in.Category != "" && in.Category != domain.CategoryAll {
		q.Category = in.Category
	}

	tasks, err := uc.gateway.ListTasks(ctx, in.Session.AccessToken, q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
