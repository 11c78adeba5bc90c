package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"minitodo/internal/app"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Email    string
		Password string
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Long: `Sign in with your email and password.

The session is stored locally, so subsequent commands run without
signing in again until the session expires.

Examples:
  minitodo login --email you@example.com --password secret

  # Prompt for missing credentials
  minitodo login`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, password, err := resolveCredentials(cmd, opts.Email, opts.Password)
			if err != nil {
				return err
			}

			if err := c.Sessions.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Account password")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.Sessions.Current() == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err := c.Sessions.SignOut(cmd.Context()); err != nil {
				// The local session is already gone; report the remote failure
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: remote sign-out failed: %v\n", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

// newSignupCommand creates the signup command.
func newSignupCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Email    string
		Password string
	}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Long: `Create a new account with an email and password.

Depending on the project settings the account may need email
confirmation before the first sign-in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, password, err := resolveCredentials(cmd, opts.Email, opts.Password)
			if err != nil {
				return err
			}

			pending, err := c.Sessions.SignUp(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if pending {
				_, _ = fmt.Fprintf(w, "Check %s for a confirmation link, then run 'minitodo login'\n", email)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Signed up and signed in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Account password")

	return cmd
}

// resolveCredentials fills missing credentials by prompting on stdin.
func resolveCredentials(cmd *cobra.Command, email, password string) (string, string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	if email == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	if password == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}
