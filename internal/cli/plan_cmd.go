package cli

import (
	"fmt"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/scheduler"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show, rebuild or export a day's study plan",
	}
	cmd.AddCommand(
		newPlanShowCmd(a),
		newPlanGenerateCmd(a),
		newPlanExportCmd(a),
	)
	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	var day domain.PlanDay

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := a.Plans.Blocks(ctxOf(cmd), day, a.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlocks(day, blocks))
			return nil
		},
	}
	addDayFlag(cmd.Flags(), &day)
	return cmd
}

func newPlanGenerateCmd(a *App) *cobra.Command {
	var day domain.PlanDay
	var focus string
	var startHour float64

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"rebuild"},
		Short:   "Rebuild the plan from pending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewPlanRequest(day)
			req.FocusRaw = focus
			if cmd.Flags().Changed("start-hour") {
				req.SetStartHour(startHour)
			}
			now := a.now()
			req.Now = &now

			res, err := a.Plans.Rebuild(ctxOf(cmd), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanResult(res))
			return nil
		},
	}
	f := cmd.Flags()
	addDayFlag(f, &day)
	f.StringVar(&focus, "focus", "", "Only plan tasks matching this subject or topic")
	f.Float64Var(&startHour, "start-hour", a.startHour(), "Hour the plan starts (0-23)")
	return cmd
}

func newPlanExportCmd(a *App) *cobra.Command {
	var day domain.PlanDay

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror the stored plan into Google Calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Calendar == nil {
				return fmt.Errorf("calendar export is not configured")
			}
			ctx := ctxOf(cmd)
			now := a.now()
			blocks, err := a.Plans.Blocks(ctx, day, now)
			if err != nil {
				return err
			}
			syncer, err := a.Calendar(ctx)
			if err != nil {
				return err
			}
			window := scheduler.ResolveDayWindow(day, now, 0)
			res, err := syncer.Sync(ctx, window.Start, blocks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calendar updated: %d added, %d updated, %d removed\n", res.Inserted, res.Updated, res.Deleted)
			return nil
		},
	}
	addDayFlag(cmd.Flags(), &day)
	return cmd
}
