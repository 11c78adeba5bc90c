package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"minitodo/internal/app"
	"minitodo/internal/controller"
	"minitodo/internal/domain"
	"minitodo/internal/session"
)

// errDisplayDuration is how long a transient error stays on screen.
const errDisplayDuration = 5 * time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container  *app.Container
	controller *controller.Controller
	sess       *domain.Session
	err        error

	// State
	categories []string

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model

	// Input state (large structs)
	form  taskForm
	login loginForm

	// Numeric state (smaller types last)
	mode           Mode
	width          int
	height         int
	categoryCursor int
	waiting        bool
	deleteTaskID   string
	deleteTitle    string
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	styles := DefaultStyles()
	delegate := newTaskDelegate(styles)
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	m := &Model{
		container:  c,
		controller: c.Controller(),
		keys:       DefaultKeyMap(),
		styles:     styles,
		help:       help.New(),
		taskList:   taskList,
		form:       newTaskForm(),
		login:      newLoginForm(),
		mode:       ModeLogin,
	}
	if sess := c.Sessions.Current(); sess != nil {
		m.sess = sess
		m.mode = ModeNormal
	}
	return m
}

// ForwardSessionChanges subscribes to the manager and delivers every
// session change to the program as a MsgSessionChanged, so changes
// originating outside the view (startup refresh, another consumer) reach
// it too. The returned function removes the subscription; callers invoke
// it when the program exits.
func ForwardSessionChanges(sessions *session.Manager, send func(tea.Msg)) func() {
	return sessions.Subscribe(func(sess *domain.Session) {
		send(MsgSessionChanged{Session: sess})
	})
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	if m.sess != nil {
		return m.refresh()
	}
	return nil
}

// refresh returns a command that re-fetches the task collection.
func (m *Model) refresh() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := m.controller.Refresh(context.Background(), sess); err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksRefreshed{}
	}
}

// createTask returns a command that creates the drafted task and refreshes.
func (m *Model) createTask(draft domain.Draft) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := m.controller.Create(context.Background(), sess, draft); err != nil {
			return MsgError{Err: err}
		}
		return MsgMutationDone{}
	}
}

// updateTask returns a command that applies the drafted edit and refreshes.
func (m *Model) updateTask(draft domain.Draft) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := m.controller.Update(context.Background(), sess, draft); err != nil {
			return MsgError{Err: err}
		}
		return MsgMutationDone{}
	}
}

// deleteTask returns a command that deletes the task and refreshes.
func (m *Model) deleteTask(taskID string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := m.controller.Delete(context.Background(), sess, taskID); err != nil {
			return MsgError{Err: err}
		}
		return MsgMutationDone{}
	}
}

// toggleTask returns a command that flips the task's completion and refreshes.
func (m *Model) toggleTask(taskID string, current bool) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := m.controller.ToggleComplete(context.Background(), sess, taskID, current); err != nil {
			return MsgError{Err: err}
		}
		return MsgMutationDone{}
	}
}

// signIn returns a command that signs in with the given credentials. On
// success the session manager announces the change to its subscribers,
// which is how MsgSessionChanged reaches the program; the command itself
// only reports failures.
func (m *Model) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Sessions.SignIn(context.Background(), email, password); err != nil {
			return MsgError{Err: err}
		}
		return nil
	}
}

// signUp returns a command that registers a new account. An immediate
// session is announced through the manager's subscription, like signIn.
func (m *Model) signUp(email, password string) tea.Cmd {
	return func() tea.Msg {
		pending, err := m.container.Sessions.SignUp(context.Background(), email, password)
		if err != nil {
			return MsgError{Err: err}
		}
		if pending {
			return MsgSignUpPending{Email: email}
		}
		return nil
	}
}

// signOut returns a command that signs out. The manager clears the local
// session even when remote revocation fails, so subscribers always hear
// the sign-out; local task state is dropped when that change arrives.
func (m *Model) signOut() tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Sessions.SignOut(context.Background()); err != nil {
			return MsgError{Err: err}
		}
		return nil
	}
}

// clearErrorAfter returns a command that clears the error after a delay.
func clearErrorAfter() tea.Cmd {
	return tea.Tick(errDisplayDuration, func(time.Time) tea.Msg {
		return MsgClearError{}
	})
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		task := ti.task
		return &task
	}
	return nil
}

// syncTaskList rebuilds the list items and filter choices from the
// controller's collection.
func (m *Model) syncTaskList() {
	tasks := m.controller.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskItem{task: task})
	}
	m.taskList.SetItems(items)
	m.categories = m.controller.Categories()
	if m.categoryCursor >= len(m.categories) {
		m.categoryCursor = 0
	}
}
