package usecase

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"minitodo/internal/domain"
)

// ImportTasksInput contains the parameters for bulk task import.
type ImportTasksInput struct {
	Session *domain.Session // Authenticated session (required)
	Content []byte          // YAML document listing tasks
}

// ImportTasksOutput contains the result of bulk task import.
type ImportTasksOutput struct {
	Created int // Number of tasks created
}

// ImportTasks is the use case for creating tasks from a YAML file.
//
// Expected format:
//
//	tasks:
//	  - title: Buy milk
//	    category: Home
//	  - title: File expense report
//	    description: Q3 receipts
//	    category: Work
type ImportTasks struct {
	create *CreateTask
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(create *CreateTask) *ImportTasks {
	return &ImportTasks{create: create}
}

// importFile mirrors the YAML document layout.
type importFile struct {
	Tasks []importEntry `yaml:"tasks"`
}

type importEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// Execute parses the document and creates each listed task in order. The
// whole document is validated before the first gateway call so a bad entry
// cannot leave a half-imported file behind.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	if in.Session == nil {
		return nil, domain.ErrNotSignedIn
	}
	if len(in.Content) == 0 {
		return nil, domain.ErrEmptyFile
	}

	var file importFile
	if err := yaml.Unmarshal(in.Content, &file); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	if len(file.Tasks) == 0 {
		return nil, domain.ErrNoTasksInFile
	}

	drafts := make([]domain.Draft, 0, len(file.Tasks))
	for i, entry := range file.Tasks {
		draft, err := domain.Draft{
			Title:       entry.Title,
			Description: entry.Description,
			Category:    entry.Category,
		}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}

	created := 0
	for i, draft := range drafts {
		if _, err := uc.create.Execute(ctx, CreateTaskInput{Session: in.Session, Draft: draft}); err != nil {
			return &ImportTasksOutput{Created: created}, fmt.Errorf("task %d: %w", i+1, err)
		}
		created++
	}
	return &ImportTasksOutput{Created: created}, nil
}
