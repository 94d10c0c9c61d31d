package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/cli/formatter"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ExercisePicker asks the user for a stage and one of its exercises.
type ExercisePicker func(stages []*domain.Stage) (stageID, exerciseID string, err error)

var errNoExercises = errors.New("the catalog has no exercises; add some with 'exercise add'")

func lessonplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// exerciseOptions lists every exercise as "Stage › Exercise (duration)".
// The option value is the index into refs.
func exerciseOptions(stages []*domain.Stage) ([]huh.Option[int], [][2]string) {
	var opts []huh.Option[int]
	var refs [][2]string
	for _, st := range stages {
		for _, ex := range st.Exercises {
			label := fmt.Sprintf("%s › %s (%s)", st.Name, ex.Name, formatter.Duration(ex.Duration))
			opts = append(opts, huh.NewOption(label, len(refs)))
			refs = append(refs, [2]string{st.ID, ex.ID})
		}
	}
	return opts, refs
}

// exercisePickerForm returns a themed single-select form over all exercises.
func exercisePickerForm(opts []huh.Option[int], choice *int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Add which exercise?").
				Description("Exercises are grouped by stage").
				Options(opts...).
				Value(choice),
		),
	).WithTheme(lessonplanHuhTheme()).WithShowHelp(false)
}

// pickExerciseHuh is the default ExercisePicker.
func pickExerciseHuh(stages []*domain.Stage) (string, string, error) {
	opts, refs := exerciseOptions(stages)
	if len(opts) == 0 {
		return "", "", errNoExercises
	}
	var choice int
	if err := exercisePickerForm(opts, &choice).Run(); err != nil {
		return "", "", err
	}
	return refs[choice][0], refs[choice][1], nil
}
