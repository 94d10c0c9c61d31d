package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/cli/formatter"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage catalog stages",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageShowCmd(app),
		newStageRenameCmd(app),
		newStageRemoveCmd(app),
	)

	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a stage",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := &domain.Stage{Name: strings.Join(args, " "), Description: description}
			if err := app.Catalog.CreateStage(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created stage %s %s\n", st.Name, formatter.TruncID(st.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Stage description")

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := app.Catalog.ListStages(cmd.Context())
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stages found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStageList(stages))
			return nil
		},
	}
}

func newStageShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show STAGE",
		Short: "Show a stage and its exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStage(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStageDetail(st))
			return nil
		},
	}
}

func newStageRenameCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "rename STAGE NEW_NAME",
		Short: "Rename a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStage(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			st.Name = args[1]
			if cmd.Flags().Changed("description") {
				st.Description = description
			}
			if err := app.Catalog.UpdateStage(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed stage to %s\n", st.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STAGE",
		Short: "Delete a stage and its exercises",
		Long:  "Delete a stage and its exercises. Plans keep their copies of the stage's items.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStage(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteStage(cmd.Context(), st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed stage %s\n", st.Name)
			return nil
		},
	}
}
