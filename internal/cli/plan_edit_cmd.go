package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/service"
	"github.com/spf13/cobra"
)

func newPlanAddStageCmd(app *App) *cobra.Command {
	var pos domain.StagePosition

	cmd := &cobra.Command{
		Use:   "add-stage PLAN STAGE",
		Short: "Add an empty stage to the top or bottom of a plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			st, err := resolveStage(ctx, app, args[1])
			if err != nil {
				return err
			}
			view, err := app.Plans.DeclareStage(ctx, planID, st.ID, pos)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}

	cmd.Flags().Var(newPositionValue(domain.PositionBottom, &pos), "position", "Where to put the stage: top or bottom")

	return cmd
}

func newPlanDropStageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-stage PLAN STAGE",
		Short: "Remove a stage and all of its exercises from a plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Get(ctx, planID)
			if err != nil {
				return err
			}
			stageID, err := resolvePlanStageID(ctx, app, p, args[1])
			if err != nil {
				return err
			}
			view, err := app.Plans.DropStage(ctx, planID, stageID)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}
}

func newPlanAddCmd(app *App) *cobra.Command {
	var (
		stageRef    string
		exerciseRef string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "add PLAN",
		Short: "Add a catalog exercise to the end of its stage",
		Long: `Add a catalog exercise to the end of its stage in the plan.

Without --stage and --exercise an interactive picker is shown when running
in a terminal. Adding is refused when it would push the plan past its
budget, unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var stageID, exerciseID string
			switch {
			case stageRef != "" && exerciseRef != "":
				st, err := resolveStage(ctx, app, stageRef)
				if err != nil {
					return err
				}
				stageID = st.ID
				if exerciseID, err = resolveExerciseID(st, exerciseRef); err != nil {
					return err
				}
			case stageRef == "" && exerciseRef == "" && app.interactive():
				stages, err := app.Catalog.ListStages(ctx)
				if err != nil {
					return err
				}
				pick := app.PickExercise
				if pick == nil {
					pick = pickExerciseHuh
				}
				if stageID, exerciseID, err = pick(stages); err != nil {
					return err
				}
			default:
				return fmt.Errorf("--stage and --exercise are required")
			}

			view, err := app.Plans.AddExercise(ctx, service.AddExerciseRequest{
				PlanID:     planID,
				StageID:    stageID,
				ExerciseID: exerciseID,
				Force:      force,
			})
			if errors.Is(err, service.ErrOverBudget) {
				return fmt.Errorf("%w (use --force to add it anyway)", err)
			}
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&stageRef, "stage", "", "Stage name or ID")
	cmd.Flags().StringVar(&exerciseRef, "exercise", "", "Exercise name or ID within the stage")
	cmd.Flags().BoolVar(&force, "force", false, "Add even if the plan goes over budget")

	return cmd
}

func newPlanRemoveItemCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item PLAN ITEM",
		Short: "Remove one exercise from a plan by its # or ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Get(ctx, planID)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(p, args[1])
			if err != nil {
				return err
			}
			view, err := app.Plans.RemoveItem(ctx, planID, itemID)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}
}

func newPlanMoveCmd(app *App) *cobra.Command {
	var dir domain.Direction

	cmd := &cobra.Command{
		Use:   "move PLAN ITEM",
		Short: "Move an exercise up or down within its stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Get(ctx, planID)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(p, args[1])
			if err != nil {
				return err
			}
			view, err := app.Plans.MoveItem(ctx, planID, itemID, dir)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}

	cmd.Flags().VarP(newDirectionValue(domain.DirectionUp, &dir), "direction", "d", "up or down")

	return cmd
}

func newPlanMoveStageCmd(app *App) *cobra.Command {
	var dir domain.Direction

	cmd := &cobra.Command{
		Use:   "move-stage PLAN STAGE",
		Short: "Move a whole stage up or down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Get(ctx, planID)
			if err != nil {
				return err
			}
			stageID, err := resolvePlanStageID(ctx, app, p, args[1])
			if err != nil {
				return err
			}
			view, err := app.Plans.MoveStage(ctx, planID, stageID, dir)
			if err != nil {
				return err
			}
			printView(cmd, app, view)
			return nil
		},
	}

	cmd.Flags().VarP(newDirectionValue(domain.DirectionUp, &dir), "direction", "d", "up or down")

	return cmd
}
