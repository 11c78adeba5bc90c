package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"minitodo/internal/domain"
)

// tasksTable is the table holding task rows.
const tasksTable = "tasks"

// Ensure Client implements domain.TaskGateway.
var _ domain.TaskGateway = (*Client)(nil)

// restErrorResponse is the PostgREST error payload.
type restErrorResponse struct {
	Message string `json:"message"`
}

// gatewayError maps a failed data-API response to a domain.GatewayError.
func gatewayError(op string, status int, body []byte) error {
	var payload restErrorResponse
	_ = json.Unmarshal(body, &payload)
	return &domain.GatewayError{Op: op, Message: payload.Message, StatusCode: status}
}

// taskRecord is the wire shape for inserts. CreatedAt and ID are omitted
// so the store assigns them.
type taskRecord struct {
	Owner       string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Complete    bool   `json:"complete"`
}

// ListTasks returns the owner's tasks matching the query, newest first.
func (c *Client) ListTasks(ctx context.Context, accessToken string, q domain.TaskQuery) ([]domain.Task, error) {
	query := url.Values{
		"select":  {"*"},
		"user_id": {"eq." + q.Owner},
		"order":   {"created_at.desc"},
	}
	if q.Category != "" {
		query.Set("category", "eq."+q.Category)
	}

	var tasks []domain.Task
	status, body, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + tasksTable,
		query:  query,
		token:  accessToken,
	}, &tasks)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, gatewayError("list tasks", status, body)
	}
	return tasks, nil
}

// InsertTask creates a new task row and returns the stored representation.
func (c *Client) InsertTask(ctx context.Context, accessToken string, task domain.Task) (*domain.Task, error) {
	record := taskRecord{
		Owner:       task.Owner,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Complete:    task.Complete,
	}

	var created []domain.Task
	status, body, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/rest/v1/" + tasksTable,
		body:    []taskRecord{record},
		token:   accessToken,
		headers: map[string]string{"Prefer": "return=representation"},
	}, &created)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, gatewayError("insert task", status, body)
	}
	if len(created) == 0 {
		return nil, gatewayError("insert task", status, nil)
	}
	return &created[0], nil
}

// UpdateTask applies fields to the task with the given id and owner.
// The store answers 204 whether or not a row matched, so a concurrently
// deleted task is a silent no-op.
func (c *Client) UpdateTask(ctx context.Context, accessToken, id, owner string, fields domain.TaskFields) error {
	patch := make(map[string]any, 4)
	if fields.Title != nil {
		patch["title"] = *fields.Title
	}
	if fields.Description != nil {
		patch["description"] = *fields.Description
	}
	if fields.Category != nil {
		patch["category"] = *fields.Category
	}
	if fields.Complete != nil {
		patch["complete"] = *fields.Complete
	}

	status, body, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/" + tasksTable,
		query:  url.Values{"id": {"eq." + id}, "user_id": {"eq." + owner}},
		body:   patch,
		token:  accessToken,
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return gatewayError("update task", status, body)
	}
	return nil
}

// DeleteTask removes the task with the given id and owner.
func (c *Client) DeleteTask(ctx context.Context, accessToken, id, owner string) error {
	status, body, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/" + tasksTable,
		query:  url.Values{"id": {"eq." + id}, "user_id": {"eq." + owner}},
		token:  accessToken,
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return gatewayError("delete task", status, body)
	}
	return nil
}
