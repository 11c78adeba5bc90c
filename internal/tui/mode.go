// Package tui provides the terminal user interface for minitodo.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeLogin         Mode = iota // Sign-in / sign-up form
	ModeNormal                    // Default navigation mode
	ModeForm                      // Task create/edit form
	ModeConfirmDelete             // Delete confirmation dialog
	ModeCategory                  // Category filter picker
	ModeHelp                      // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeNormal:
		return "normal"
	case ModeForm:
		return "form"
	case ModeConfirmDelete:
		return "confirm_delete"
	case ModeCategory:
		return "category"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeLogin, ModeForm:
		return true
	case ModeNormal, ModeConfirmDelete, ModeCategory, ModeHelp:
		return false
	}
	return false
}
