package cli

import (
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog service.CatalogService
	Plans   service.LessonPlanService

	// Budget is used to classify plans in list views.
	Budget planner.Budget

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// PickExercise overrides the interactive exercise picker.
	PickExercise ExercisePicker
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lessonplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lessonplan",
		Short:         "Compose timed lesson plans from a catalog of stages and exercises",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStageCmd(app),
		newExerciseCmd(app),
		newPlanCmd(app),
		newCatalogCmd(app),
	)

	return root
}
