package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the sign-in / sign-up form shown while no session exists.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	errMsg   string
	notice   string
	signUp   bool
	focus    int
}

func newLoginForm() loginForm {
	ei := textinput.New()
	ei.Placeholder = "Email"
	ei.CharLimit = 200
	ei.Focus()

	pi := textinput.New()
	pi.Placeholder = "Password"
	pi.CharLimit = 200
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '*'

	return loginForm{
		email:    ei,
		password: pi,
	}
}

// toggleMode switches between sign-in and sign-up.
func (f *loginForm) toggleMode() {
	f.signUp = !f.signUp
	f.errMsg = ""
	f.notice = ""
}

// cycleFocus moves focus between the email and password fields.
func (f *loginForm) cycleFocus() {
	f.focus = (f.focus + 1) % 2
	if f.focus == 0 {
		f.password.Blur()
		f.email.Focus()
	} else {
		f.email.Blur()
		f.password.Focus()
	}
}

// update forwards the message to the focused field.
func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

// credentials validates and returns the entered email and password.
func (f *loginForm) credentials() (email, password string, ok bool) {
	email = strings.TrimSpace(f.email.Value())
	password = f.password.Value()
	if email == "" || password == "" {
		f.errMsg = "Email and password are required."
		return "", "", false
	}
	f.errMsg = ""
	return email, password, true
}
