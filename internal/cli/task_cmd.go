package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage study tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

// subjectIDFor returns the ID of the named subject, creating it if needed.
// A blank name yields nil.
func subjectIDFor(ctx context.Context, app *App, name string) (*string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	subject, err := app.Subjects.Ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	return &subject.ID, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var v taskFormValues
	var estimate, priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			if estimate > 0 {
				v.Estimate = strconv.Itoa(estimate)
			}
			if priority > 0 {
				v.Priority = strconv.Itoa(priority)
			}
			if strings.TrimSpace(v.Title) == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required")
				}
				if err := taskForm(&v).RunWithContext(ctx); err != nil {
					return err
				}
			}

			task, subjectName, err := v.toTask(app.now().Location())
			if err != nil {
				return err
			}
			if task.SubjectID, err = subjectIDFor(ctx, app, subjectName); err != nil {
				return err
			}
			if err := app.Tasks.Create(ctx, task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s %s\n", formatter.Bold(task.Title), formatter.Dim("["+shortID(task.ID)+"]"))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&v.Title, "title", "", "Task title")
	f.StringVar(&v.Description, "description", "", "Task description")
	f.StringVar(&v.Subject, "subject", "", "Subject name (created if missing)")
	f.StringVar(&v.Due, "due", "", "Due date (YYYY-MM-DD)")
	f.IntVar(&estimate, "estimate", 0, "Estimated minutes (default 50)")
	f.IntVar(&priority, "priority", 0, "Priority 1-3 (default 1)")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(ctxOf(cmd))
			if err != nil {
				return err
			}
			if pendingOnly {
				kept := tasks[:0]
				for _, t := range tasks {
					if t.IsEligible() {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Hide finished tasks")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(task, app.now()))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, subject, due, status string
	var estimate, priority int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			f := cmd.Flags()
			if f.Changed("title") {
				patch.Title = &title
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("subject") {
				sid, err := subjectIDFor(ctx, app, subject)
				if err != nil {
					return err
				}
				empty := ""
				if sid == nil {
					sid = &empty
				}
				patch.SubjectID = sid
			}
			if f.Changed("due") {
				if due == "" || strings.EqualFold(due, "none") {
					patch.ClearDueDate = true
				} else {
					d, err := time.ParseInLocation("2006-01-02", due, app.now().Location())
					if err != nil {
						return fmt.Errorf("invalid due date %q: %w", due, err)
					}
					patch.DueDate = &d
				}
			}
			if f.Changed("estimate") {
				patch.EstimatedMinutes = &estimate
			}
			if f.Changed("priority") {
				patch.Priority = &priority
			}
			if f.Changed("status") {
				s, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &s
			}

			task, err := app.Tasks.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", formatter.Bold(task.Title))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "New title")
	f.StringVar(&description, "description", "", "New description")
	f.StringVar(&subject, "subject", "", "Subject name; empty clears it")
	f.StringVar(&due, "due", "", "Due date (YYYY-MM-DD); \"none\" clears it")
	f.IntVar(&estimate, "estimate", 0, "Estimated minutes")
	f.IntVar(&priority, "priority", 0, "Priority 1-3")
	f.StringVar(&status, "status", "", "pending, in_progress or done")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.MarkDone(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StatusBadge(task.Status), task.Title)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", shortID(id))
			return nil
		},
	}
}
