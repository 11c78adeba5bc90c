package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitodo/internal/domain"
)

func TestTaskForm_Draft_Valid(t *testing.T) {
	// Setup
	form := newTaskForm()
	form.reset(domain.Draft{})
	form.title.SetValue("  Buy milk  ")
	form.category.SetValue("Home")
	form.description.SetValue("2% if they have it")

	// Execute
	draft, ok := form.draft()

	// Assert
	require.True(t, ok)
	assert.Equal(t, "Buy milk", draft.Title)
	assert.Equal(t, "Home", draft.Category)
	assert.Equal(t, "2% if they have it", draft.Description)
	assert.Empty(t, form.errMsg)
}

func TestTaskForm_Draft_EmptyTitleShowsInlineError(t *testing.T) {
	// Setup
	form := newTaskForm()
	form.reset(domain.Draft{})
	form.title.SetValue("   ")

	// Execute
	_, ok := form.draft()

	// Assert
	assert.False(t, ok)
	assert.Equal(t, "Title is required.", form.errMsg)
}

func TestTaskForm_Reset_ForEdit(t *testing.T) {
	// Setup
	form := newTaskForm()

	// Execute
	form.reset(domain.Draft{
		TaskID:   "t1",
		Title:    "Existing",
		Category: "Work",
	})

	// Assert
	assert.True(t, form.isEdit())
	assert.Equal(t, "Existing", form.title.Value())
	assert.Equal(t, "Work", form.category.Value())
	assert.Zero(t, form.focus)
}

func TestTaskForm_CycleFocus_WrapsAround(t *testing.T) {
	// Setup
	form := newTaskForm()
	form.reset(domain.Draft{})

	// Execute & Assert
	form.cycleFocus()
	assert.Equal(t, 1, form.focus)
	form.cycleFocus()
	assert.Equal(t, 2, form.focus)
	form.cycleFocus()
	assert.Equal(t, 0, form.focus)
}

func TestLoginForm_Credentials(t *testing.T) {
	// Setup
	form := newLoginForm()
	form.email.SetValue("  user@example.com ")
	form.password.SetValue("secret")

	// Execute
	email, password, ok := form.credentials()

	// Assert
	require.True(t, ok)
	assert.Equal(t, "user@example.com", email)
	assert.Equal(t, "secret", password)
}

func TestLoginForm_Credentials_Missing(t *testing.T) {
	// Setup
	form := newLoginForm()
	form.email.SetValue("user@example.com")

	// Execute
	_, _, ok := form.credentials()

	// Assert
	assert.False(t, ok)
	assert.NotEmpty(t, form.errMsg)
}

func TestLoginForm_ToggleMode_ClearsMessages(t *testing.T) {
	// Setup
	form := newLoginForm()
	form.errMsg = "Invalid login credentials"
	form.notice = "stale"

	// Execute
	form.toggleMode()

	// Assert
	assert.True(t, form.signUp)
	assert.Empty(t, form.errMsg)
	assert.Empty(t, form.notice)
}
