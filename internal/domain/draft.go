package domain

import "strings"

// Draft is the transient, unpersisted task state held while a create or
// edit form is open. TaskID is empty when creating a new task.
type Draft struct {
	TaskID      string
	Title       string
	Description string
	Category    string
}

// IsEdit reports whether the draft targets an existing task.
func (d Draft) IsEdit() bool {
	return d.TaskID != ""
}

// Normalize trims all text fields and validates the draft.
// Returns ErrEmptyTitle if the title is empty after trimming; a draft that
// fails Normalize must never reach the gateway.
func (d Draft) Normalize() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	if d.Title == "" {
		return Draft{}, ErrEmptyTitle
	}
	return d, nil
}
