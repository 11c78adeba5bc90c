// Package cli provides the command-line interface for minitodo.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"minitodo/internal/app"
	"minitodo/internal/domain"
	"minitodo/internal/tui"
)

// Command group IDs.
const (
	groupAuth = "auth"
	groupTask = "task"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for minitodo.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "minitodo",
		Short: "A to-do list in your terminal",
		Long: `minitodo is a to-do list client backed by a hosted Supabase project.
Tasks are stored per account; sign up once, then sign in from any machine.

Run without arguments to open the interactive UI, or use the subcommands
for one-shot operations from scripts.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			// Restore the persisted session before any command runs
			_ = c.Sessions.Init(cmd.Context())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Default: launch the TUI
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Account Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
	)

	// Account commands
	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupAuth

	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupAuth

	signupCmd := newSignupCommand(c)
	signupCmd.GroupID = groupAuth

	// Task commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	root.AddCommand(
		loginCmd,
		logoutCmd,
		signupCmd,
		listCmd,
		addCmd,
		editCmd,
		rmCmd,
		doneCmd,
		importCmd,
	)

	return root
}

// launchTUI starts the interactive terminal UI. Session changes reach
// the program through the manager's subscription rather than the view's
// own commands.
func launchTUI(c *app.Container) error {
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	unsubscribe := tui.ForwardSessionChanges(c.Sessions, p.Send)
	defer unsubscribe()
	_, err := p.Run()
	return err
}

// requireSession returns the current session or ErrNotSignedIn.
func requireSession(c *app.Container) (*domain.Session, error) {
	sess := c.Sessions.Current()
	if sess == nil {
		return nil, domain.ErrNotSignedIn
	}
	return sess, nil
}
