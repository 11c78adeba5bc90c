package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minitodo/internal/domain"
)

// View renders the current state of the model.
func (m *Model) View() string {
	switch m.mode {
	case ModeLogin:
		return m.styles.App.Render(m.loginView())
	case ModeForm:
		return m.styles.App.Render(m.formView())
	case ModeConfirmDelete:
		return m.styles.App.Render(m.confirmDeleteView())
	case ModeCategory:
		return m.styles.App.Render(m.categoryView())
	case ModeHelp:
		return m.styles.App.Render(m.helpView())
	}
	return m.styles.App.Render(m.listView())
}

// headerView renders the app title line with the signed-in email and the
// active category filter.
func (m *Model) headerView() string {
	title := m.styles.Header.Render("minitodo")
	var parts []string
	if m.sess != nil {
		parts = append(parts, m.styles.HeaderText.Render(m.sess.Email))
	}
	if filter := m.controller.Filter(); filter != domain.CategoryAll {
		parts = append(parts, m.styles.FilterActive.Render("filter: "+filter))
	}
	if len(parts) == 0 {
		return title
	}
	return title + "  " + strings.Join(parts, "  ")
}

// statusView renders the transient status line: busy indicator or error.
func (m *Model) statusView() string {
	if m.err != nil {
		return m.styles.ErrorMsg.Render(m.err.Error())
	}
	if m.waiting {
		return m.styles.Waiting.Render("Please wait...")
	}
	return ""
}

func (m *Model) listView() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if len(m.taskList.Items()) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Empty.Render("No tasks found."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.taskList.View())
		b.WriteString("\n")
	}

	if status := m.statusView(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

func (m *Model) loginView() string {
	var b strings.Builder

	action := "Sign in"
	toggleHint := "ctrl+s: sign up instead"
	if m.login.signUp {
		action = "Sign up"
		toggleHint = "ctrl+s: sign in instead"
	}

	b.WriteString(m.styles.DialogTitle.Render("minitodo - " + action))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.login.email.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	if m.login.errMsg != "" {
		b.WriteString(m.styles.ErrorMsg.Render(m.login.errMsg))
		b.WriteString("\n")
	}
	if m.login.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.login.notice))
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(m.styles.Waiting.Render("Please wait..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: " + strings.ToLower(action) + " • tab: next field • " + toggleHint + " • ctrl+c: quit"))
	return b.String()
}

func (m *Model) formView() string {
	var b strings.Builder

	title := "New task"
	if m.form.isEdit() {
		title = "Edit task"
	}
	b.WriteString(m.styles.DialogTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.form.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputLabel.Render("Category"))
	b.WriteString("\n")
	b.WriteString(m.form.category.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.form.description.View())
	b.WriteString("\n\n")

	if m.form.errMsg != "" {
		b.WriteString(m.styles.ErrorMsg.Render(m.form.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: save • tab: next field • esc: cancel"))
	return b.String()
}

func (m *Model) confirmDeleteView() string {
	prompt := fmt.Sprintf("Delete task %q?", m.deleteTitle)
	body := m.styles.DialogTitle.Render("Confirm delete") + "\n\n" +
		m.styles.DialogPrompt.Render(prompt) + "\n\n" +
		m.styles.Footer.Render("y: delete • esc: cancel")
	return m.styles.Dialog.Render(body)
}

func (m *Model) categoryView() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Filter by category"))
	b.WriteString("\n\n")

	for i, category := range m.categories {
		cursor := "  "
		style := m.styles.TaskTitle
		if i == m.categoryCursor {
			cursor = m.styles.CursorSelected.Render("> ")
			style = m.styles.TaskTitleSelected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(category))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: apply • esc: cancel"))
	return b.String()
}

func (m *Model) helpView() string {
	var rows []string
	for _, group := range m.keys.FullHelp() {
		var lines []string
		for _, binding := range group {
			lines = append(lines,
				m.styles.HelpKey.Render(fmt.Sprintf("%-10s", binding.Help().Key))+
					m.styles.HelpDesc.Render(binding.Help().Desc))
		}
		rows = append(rows, strings.Join(lines, "\n"))
	}

	body := m.styles.DialogTitle.Render("Help") + "\n\n" +
		lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n\n" +
		m.styles.Footer.Render("esc: close")
	return body
}
