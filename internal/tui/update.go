package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"minitodo/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgSessionChanged:
		m.sess = msg.Session
		m.err = nil
		m.waiting = false
		if m.sess == nil {
			m.controller.Clear()
			m.syncTaskList()
			m.login = newLoginForm()
			m.mode = ModeLogin
			return m, nil
		}
		m.mode = ModeNormal
		return m, m.refresh()

	case MsgSignUpPending:
		m.waiting = false
		m.login.notice = "Check " + msg.Email + " for a confirmation link, then sign in."
		m.login.signUp = false
		return m, nil

	case MsgTasksRefreshed:
		m.waiting = false
		m.syncTaskList()
		return m, nil

	case MsgMutationDone:
		m.waiting = false
		m.syncTaskList()
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.waiting = false
		if m.mode == ModeLogin {
			m.login.errMsg = msg.Err.Error()
			m.err = nil
			return m, nil
		}
		return m, clearErrorAfter()

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// updateLayoutSizes recomputes component sizes after a resize.
func (m *Model) updateLayoutSizes() {
	// Header, status line, and footer take a few rows
	listHeight := m.height - 8
	if listHeight < 4 {
		listHeight = 4
	}
	m.taskList.SetSize(m.width-4, listHeight)
}

// handleKeyMsg routes key presses by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeLogin:
		return m.handleLoginKeys(msg)
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeCategory:
		return m.handleCategoryKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.login.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.waiting {
			return m, nil
		}
		email, password, ok := m.login.credentials()
		if !ok {
			return m, nil
		}
		m.waiting = true
		if m.login.signUp {
			return m, m.signUp(email, password)
		}
		return m, m.signIn(email, password)

	case msg.String() == "ctrl+s":
		m.login.toggleMode()
		return m, nil
	}

	cmd := m.login.update(msg)
	return m, cmd
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.New):
		m.form.reset(domain.Draft{})
		m.mode = ModeForm
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.form.reset(domain.Draft{
			TaskID:      task.ID,
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
		})
		m.mode = ModeForm
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.deleteTaskID = task.ID
		m.deleteTitle = task.Title
		m.mode = ModeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil || m.waiting {
			return m, nil
		}
		m.waiting = true
		return m, m.toggleTask(task.ID, task.Complete)

	case key.Matches(msg, m.keys.Filter):
		if len(m.categories) == 0 {
			return m, nil
		}
		m.categoryCursor = 0
		for i, c := range m.categories {
			if c == m.controller.Filter() {
				m.categoryCursor = i
				break
			}
		}
		m.mode = ModeCategory
		return m, nil

	case key.Matches(msg, m.keys.SignOut):
		m.waiting = true
		return m, m.signOut()
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.form.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.waiting {
			return m, nil
		}
		draft, ok := m.form.draft()
		if !ok {
			return m, nil
		}
		m.mode = ModeNormal
		m.waiting = true
		if m.form.isEdit() {
			return m, m.updateTask(draft)
		}
		return m, m.createTask(draft)
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		taskID := m.deleteTaskID
		m.deleteTaskID = ""
		m.deleteTitle = ""
		m.mode = ModeNormal
		m.waiting = true
		return m, m.deleteTask(taskID)

	case key.Matches(msg, m.keys.Escape), msg.String() == "n":
		m.deleteTaskID = ""
		m.deleteTitle = ""
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.categoryCursor < len(m.categories)-1 {
			m.categoryCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.controller.SetFilter(m.categories[m.categoryCursor])
		m.mode = ModeNormal
		return m, m.refresh()

	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}
