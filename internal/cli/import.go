package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minitodo/internal/app"
	"minitodo/internal/usecase"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a YAML file",
		Long: `Create tasks in bulk from a YAML file.

File format:
  tasks:
    - title: Buy milk
      category: Home
    - title: File expense report
      description: Q3 receipts
      category: Work

The whole file is validated before any task is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Session: sess,
				Content: content,
			})
			if err != nil {
				if out != nil && out.Created > 0 {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Created %d task(s) before the failure\n", out.Created)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s)\n", out.Created)
			return nil
		},
	}
}
