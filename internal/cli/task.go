package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"minitodo/internal/app"
	"minitodo/internal/domain"
	"minitodo/internal/usecase"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Category string
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Long: `List your tasks, newest first.

Examples:
  minitodo list
  minitodo list --category Work
  minitodo list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Session:  sess,
				Category: opts.Category,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Tasks)
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tDONE\tCATEGORY\tTITLE")
			for _, task := range out.Tasks {
				done := " "
				if task.Complete {
					done = "x"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(task.ID), done, task.Category, task.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Only show tasks in this category")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Category    string
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: `Create a new task.

Examples:
  minitodo add "Buy milk"
  minitodo add "File expense report" -c Work -d "Q3 receipts"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{
				Session: sess,
				Draft: domain.Draft{
					Title:       args[0],
					Description: opts.Description,
					Category:    opts.Category,
				},
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", shortID(out.Task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Task category")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task's title, description, or category.

Only the flags you pass change; the other fields keep their values.
The ID may be abbreviated to any unique prefix.

Examples:
  minitodo edit 4f21 --title "Buy oat milk"
  minitodo edit 4f21 -c Home`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			task, err := findTask(cmd, c, sess, args[0])
			if err != nil {
				return err
			}

			draft := domain.Draft{
				TaskID:      task.ID,
				Title:       task.Title,
				Description: task.Description,
				Category:    task.Category,
			}
			if cmd.Flags().Changed("title") {
				draft.Title = opts.Title
			}
			if cmd.Flags().Changed("description") {
				draft.Description = opts.Description
			}
			if cmd.Flags().Changed("category") {
				draft.Category = opts.Category
			}

			if _, err := c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
				Session: sess,
				Draft:   draft,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", shortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "New category")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			task, err := findTask(cmd, c, sess, args[0])
			if err != nil {
				return err
			}

			if _, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
				Session: sess,
				TaskID:  task.ID,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", shortID(task.ID))
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(c)
			if err != nil {
				return err
			}

			task, err := findTask(cmd, c, sess, args[0])
			if err != nil {
				return err
			}

			if _, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{
				Session:  sess,
				TaskID:   task.ID,
				Complete: task.Complete,
			}); err != nil {
				return err
			}

			state := "done"
			if task.Complete {
				state = "not done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked task %s as %s\n", shortID(task.ID), state)
			return nil
		},
	}
}

// findTask resolves an ID or unique ID prefix to a task.
func findTask(cmd *cobra.Command, c *app.Container, sess *domain.Session, idOrPrefix string) (*domain.Task, error) {
	out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Session: sess})
	if err != nil {
		return nil, err
	}

	var match *domain.Task
	for i := range out.Tasks {
		task := &out.Tasks[i]
		if task.ID == idOrPrefix {
			return task, nil
		}
		if strings.HasPrefix(task.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("task ID prefix %q is ambiguous", idOrPrefix)
			}
			match = task
		}
	}
	if match == nil {
		return nil, domain.ErrTaskNotFound
	}
	return match, nil
}

// shortID returns an abbreviated task ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
