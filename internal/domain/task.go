// Package domain contains core business entities and interfaces.
package domain

import (
	"time"
)

// CategoryAll is the sentinel filter value meaning "no category filtering".
const CategoryAll = "All"

// Task represents a to-do record owned by exactly one user.
// The remote store assigns ID and CreatedAt; the client never invents them.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time `json:"created_at"`            // Creation time, assigned by the store; sole ordering key
	ID          string    `json:"id"`                    // Opaque unique identifier, immutable
	Owner       string    `json:"user_id"`               // Owning user's ID, set at creation
	Title       string    `json:"title"`                 // Title (required, never empty)
	Description string    `json:"description,omitempty"` // Free text (optional)
	Category    string    `json:"category,omitempty"`    // Grouping label (optional)
	Complete    bool      `json:"complete"`              // Completion flag
}

// Categories returns the distinct non-empty category values present in
// tasks, prefixed with the CategoryAll sentinel. Order of appearance is
// preserved so the filter control stays stable across refreshes of the
// same collection.
func Categories(tasks []Task) []string {
	result := []string{CategoryAll}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		result = append(result, t.Category)
	}
	return result
}
