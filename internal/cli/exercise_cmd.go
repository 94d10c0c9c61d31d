package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lessonplan/internal/cli/formatter"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/spf13/cobra"
)

func newExerciseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage catalog exercises",
	}

	cmd.AddCommand(
		newExerciseAddCmd(app),
		newExerciseUpdateCmd(app),
		newExerciseRemoveCmd(app),
	)

	return cmd
}

// durationSeconds converts a --duration flag to whole seconds.
func durationSeconds(d time.Duration) (int, error) {
	if d <= 0 || d%time.Second != 0 {
		return 0, fmt.Errorf("duration must be a positive whole number of seconds, e.g. 5m or 90s (got %s)", d)
	}
	return int(d / time.Second), nil
}

func newExerciseAddCmd(app *App) *cobra.Command {
	var (
		duration    time.Duration
		description string
	)

	cmd := &cobra.Command{
		Use:   "add STAGE NAME",
		Short: "Add an exercise to a stage",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := durationSeconds(duration)
			if err != nil {
				return err
			}
			st, err := resolveStage(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			ex := &domain.Exercise{
				StageID:     st.ID,
				Name:        strings.Join(args[1:], " "),
				Duration:    secs,
				Description: description,
			}
			if err := app.Catalog.CreateExercise(cmd.Context(), ex); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s %s\n",
				ex.Name, formatter.Duration(ex.Duration), st.Name, formatter.TruncID(ex.ID))
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Exercise length, e.g. 5m or 2m30s")
	cmd.Flags().StringVar(&description, "description", "", "Exercise description")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newExerciseUpdateCmd(app *App) *cobra.Command {
	var (
		name        string
		duration    time.Duration
		description string
	)

	cmd := &cobra.Command{
		Use:   "update EXERCISE",
		Short: "Change an exercise's name, duration or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := resolveExerciseAnywhere(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				ex.Name = name
			}
			if cmd.Flags().Changed("duration") {
				if ex.Duration, err = durationSeconds(duration); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("description") {
				ex.Description = description
			}
			if err := app.Catalog.UpdateExercise(cmd.Context(), ex); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", ex.Name, formatter.Duration(ex.Duration))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().DurationVar(&duration, "duration", 0, "New length, e.g. 5m")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newExerciseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove EXERCISE",
		Short: "Delete an exercise from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := resolveExerciseAnywhere(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteExercise(cmd.Context(), ex.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed exercise %s\n", ex.Name)
			return nil
		},
	}
}
