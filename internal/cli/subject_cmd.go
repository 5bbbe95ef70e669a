package cli

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a subject",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				subject, err := app.Subjects.Create(ctxOf(cmd), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created subject %s\n", formatter.Bold(subject.Name))
				return nil
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List subjects",
			RunE: func(cmd *cobra.Command, args []string) error {
				subjects, err := app.Subjects.List(ctxOf(cmd))
				if err != nil {
					return err
				}
				if len(subjects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No subjects yet."))
					return nil
				}
				rows := make([][]string, len(subjects))
				for i, s := range subjects {
					rows[i] = []string{formatter.Dim(shortID(s.ID)), s.Name}
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME"}, rows))
				return nil
			},
		},
	)
	return cmd
}
