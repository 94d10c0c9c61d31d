package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lessonplan/internal/cli/formatter"
	"github.com/alexanderramin/lessonplan/internal/exchange"
	"github.com/alexanderramin/lessonplan/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build and inspect lesson plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanRenameCmd(app),
		newPlanRemoveCmd(app),
		newPlanCopyCmd(app),
		newPlanStartCmd(app),
		newPlanBudgetCmd(app),
		newPlanAddStageCmd(app),
		newPlanDropStageCmd(app),
		newPlanAddCmd(app),
		newPlanRemoveItemCmd(app),
		newPlanMoveCmd(app),
		newPlanMoveStageCmd(app),
		newPlanExportCmd(app),
		newPlanImportCmd(app),
	)

	return cmd
}

// stageNames maps catalog stage IDs to names for rendering empty stages.
func stageNames(ctx context.Context, app *App) map[string]string {
	names := make(map[string]string)
	stages, err := app.Catalog.ListStages(ctx)
	if err != nil {
		return names
	}
	for _, s := range stages {
		names[s.ID] = s.Name
	}
	return names
}

func printView(cmd *cobra.Command, app *App, view *service.PlanView) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(formatter.ScheduleData{
		Plan:       view.Plan,
		Schedule:   view.Schedule,
		StageNames: stageNames(cmd.Context(), app),
	}))
}

func newPlanNewCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "new TITLE",
		Short: "Create an empty plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Create(cmd.Context(), strings.Join(args, " "), start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s starting at %s %s\n",
				p.Title, p.StartTime, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Lesson start time (HH:MM); defaults to the configured start")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans, most recently changed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, app.Budget))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "show PLAN",
		Short: "Show a plan's timed schedule and budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Plans.View(cmd.Context(), id)
			if err != nil {
				return err
			}
			if text {
				fmt.Fprintln(cmd.OutOrStdout(), exchange.FormatScheduleText(view.Schedule))
				return nil
			}
			printView(cmd, app, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "Print the plain-text export instead of the table")

	return cmd
}

func newPlanRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PLAN NEW_TITLE",
		Short: "Rename a plan",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Plans.Rename(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed plan to %s\n", view.Plan.Title)
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan removed.")
			return nil
		},
	}
}

func newPlanCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy PLAN",
		Short: "Duplicate a plan under a numbered copy title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Duplicate(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", p.Title, formatter.TruncID(p.ID))
			return nil
		},
	}
}

func newPlanStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start PLAN HH:MM",
		Short: "Set the lesson start time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Plans.SetStartTime(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}
}

func newPlanBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget PLAN DURATION",
		Short: "Set the lesson length the plan is checked against, e.g. 45m or 1h30m",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[1])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[1], err)
			}
			secs, err := durationSeconds(d)
			if err != nil {
				return err
			}
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Plans.SetBudget(cmd.Context(), id, secs)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}
}
