package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/domain"
)

// match resolves input against candidates by exact ID, then case-insensitive
// name, then unique ID prefix.
func match(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID or name is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var byName []string
	for i, name := range names {
		if strings.EqualFold(name, input) {
			byName = append(byName, ids[i])
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches); use the ID", kind, input, len(byName))
	}

	var byPrefix []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			byPrefix = append(byPrefix, id)
		}
	}
	switch len(byPrefix) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return byPrefix[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(byPrefix))
	}
}

// resolvePlanID accepts a plan UUID, title or UUID prefix.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(plans))
	names := make([]string, len(plans))
	for i, p := range plans {
		ids[i], names[i] = p.Plan.ID, p.Plan.Title
	}
	return match("plan", input, ids, names)
}

// resolveStage accepts a stage UUID, name or UUID prefix.
func resolveStage(ctx context.Context, app *App, input string) (*domain.Stage, error) {
	stages, err := app.Catalog.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(stages))
	names := make([]string, len(stages))
	for i, s := range stages {
		ids[i], names[i] = s.ID, s.Name
	}
	id, err := match("stage", input, ids, names)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("stage not found: %q", input)
}

// resolveExerciseID accepts an exercise UUID, name or UUID prefix within stage.
func resolveExerciseID(stage *domain.Stage, input string) (string, error) {
	ids := make([]string, len(stage.Exercises))
	names := make([]string, len(stage.Exercises))
	for i, e := range stage.Exercises {
		ids[i], names[i] = e.ID, e.Name
	}
	return match("exercise", input, ids, names)
}

// resolveExerciseAnywhere finds an exercise by ID or prefix across all stages.
func resolveExerciseAnywhere(ctx context.Context, app *App, input string) (*domain.Exercise, error) {
	stages, err := app.Catalog.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	var ids, names []string
	byID := make(map[string]*domain.Exercise)
	for _, s := range stages {
		for _, e := range s.Exercises {
			ids = append(ids, e.ID)
			names = append(names, e.Name)
			byID[e.ID] = e
		}
	}
	id, err := match("exercise", input, ids, names)
	if err != nil {
		return nil, err
	}
	return byID[id], nil
}

// resolveItemID accepts a 1-based position in the plan (the "#" column of
// 'plan show'), an item UUID or a UUID prefix.
func resolveItemID(plan *domain.LessonPlan, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		for _, it := range plan.Items {
			if it.Order == n {
				return it.ID, nil
			}
		}
		return "", fmt.Errorf("plan has no item #%d", n)
	}
	ids := make([]string, len(plan.Items))
	for i, it := range plan.Items {
		ids[i] = it.ID
	}
	return match("item", input, ids, make([]string, len(ids)))
}

// resolvePlanStageID accepts a stage in the plan by UUID, name or prefix,
// including stages that only appear through items.
func resolvePlanStageID(ctx context.Context, app *App, plan *domain.LessonPlan, input string) (string, error) {
	names := make(map[string]string)
	for _, it := range plan.Items {
		if _, ok := names[it.StageID]; !ok {
			names[it.StageID] = it.StageName
		}
	}
	if stages, err := app.Catalog.ListStages(ctx); err == nil {
		for _, s := range stages {
			names[s.ID] = s.Name
		}
	}

	seen := make(map[string]bool)
	var ids, labels []string
	for _, id := range append(append([]string{}, plan.StageOrder...), plan.StageIDs()...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		labels = append(labels, names[id])
	}
	return match("stage", input, ids, labels)
}
