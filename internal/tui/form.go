package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minitodo/internal/domain"
)

// taskForm is the create/edit form for a task. The same form serves both
// flows; taskID is empty for a new task.
type taskForm struct {
	title       textinput.Model
	category    textinput.Model
	description textinput.Model
	taskID      string
	errMsg      string
	focus       int
}

const taskFormFields = 3

func newTaskForm() taskForm {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	ci := textinput.New()
	ci.Placeholder = "Category (optional)"
	ci.CharLimit = 50

	di := textinput.New()
	di.Placeholder = "Description (optional)"
	di.CharLimit = 1000

	return taskForm{
		title:       ti,
		category:    ci,
		description: di,
	}
}

// reset prepares the form for the given draft and focuses the title field.
func (f *taskForm) reset(draft domain.Draft) {
	f.taskID = draft.TaskID
	f.title.SetValue(draft.Title)
	f.category.SetValue(draft.Category)
	f.description.SetValue(draft.Description)
	f.errMsg = ""
	f.focus = 0
	f.applyFocus()
}

// isEdit reports whether the form edits an existing task.
func (f *taskForm) isEdit() bool {
	return f.taskID != ""
}

// cycleFocus moves focus to the next field, wrapping around.
func (f *taskForm) cycleFocus() {
	f.focus = (f.focus + 1) % taskFormFields
	f.applyFocus()
}

func (f *taskForm) applyFocus() {
	f.title.Blur()
	f.category.Blur()
	f.description.Blur()
	switch f.focus {
	case 0:
		f.title.Focus()
	case 1:
		f.category.Focus()
	case 2:
		f.description.Focus()
	}
}

// update forwards the message to the focused field.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.title, cmd = f.title.Update(msg)
	case 1:
		f.category, cmd = f.category.Update(msg)
	case 2:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

// draft validates the form and returns the normalized draft. A validation
// failure sets the inline error message and returns false.
func (f *taskForm) draft() (domain.Draft, bool) {
	draft, err := domain.Draft{
		TaskID:      f.taskID,
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Category:    f.category.Value(),
	}.Normalize()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			f.errMsg = "Title is required."
		} else {
			f.errMsg = err.Error()
		}
		return domain.Draft{}, false
	}
	f.errMsg = ""
	return draft, true
}
