package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/alexanderramin/lessonplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonPlanService_Create_Defaults(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, "  Monday group  ", "")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Monday group", p.Title)
	assert.Equal(t, "09:00:00", p.StartTime)
	assert.Equal(t, domain.DefaultLessonDuration, p.BudgetSeconds)
	assert.Empty(t, p.Items)

	fetched, err := env.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, fetched.Title)
}

func TestLessonPlanService_Create_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, " ", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = env.svc.Create(ctx, "Late", "24:00")
	assert.ErrorIs(t, err, ErrInvalidTime)

	p, err := env.svc.Create(ctx, "Evening", "18:30")
	require.NoError(t, err)
	assert.Equal(t, "18:30:00", p.StartTime, "HH:MM is stored as HH:MM:SS")

	_, err = env.svc.Create(ctx, "evening", "")
	assert.ErrorIs(t, err, ErrTitleTaken, "titles are unique regardless of case")
}

func TestLessonPlanService_AddExercise_GroupsByStage(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	warm, warmEx := env.seedStage(t, "Warm-up", 120, 180)
	core, coreEx := env.seedStage(t, "Core", 600)

	p, err := env.svc.Create(ctx, "Lesson", "09:00")
	require.NoError(t, err)

	env.add(t, p.ID, warm, warmEx[0])
	env.add(t, p.ID, core, coreEx[0])
	view := env.add(t, p.ID, warm, warmEx[1])

	items := view.Plan.Items
	assert.Equal(t, []string{warmEx[0].Name, warmEx[1].Name, coreEx[0].Name}, itemNames(items),
		"a second warm-up exercise lands after the first, before core")
	assert.Equal(t, []int{1, 2, 3}, []int{items[0].Order, items[1].Order, items[2].Order})
	assert.Equal(t, []string{warm.ID, core.ID}, view.Plan.StageOrder)
	assert.Equal(t, 900, view.Plan.TotalDuration)

	s := view.Schedule
	assert.Equal(t, "09:00:00", s.ItemStart[items[0].ID])
	assert.Equal(t, "09:02:00", s.ItemStart[items[1].ID])
	assert.Equal(t, "09:05:00", s.ItemStart[items[2].ID])
	assert.Equal(t, "09:05:00", s.StageStart[core.ID])
	assert.Equal(t, "09:15:00", s.EndTime)
	assert.Equal(t, domain.BudgetOK, s.Status)

	stored, err := env.plans.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, items, stored.Items)
}

func TestLessonPlanService_AddExercise_RefusesOverBudget(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Practice", 3000, 2400, 10)

	p, err := env.svc.Create(ctx, "Long", "")
	require.NoError(t, err)
	env.add(t, p.ID, st, exs[0])
	view := env.add(t, p.ID, st, exs[1])
	assert.Equal(t, domain.DefaultLessonDuration, view.Schedule.TotalDuration)
	assert.Equal(t, domain.BudgetNear, view.Schedule.Status, "exactly at the ceiling is near the limit, not over")

	_, err = env.svc.AddExercise(ctx, AddExerciseRequest{PlanID: p.ID, StageID: st.ID, ExerciseID: exs[2].ID})
	assert.ErrorIs(t, err, ErrOverBudget)

	unchanged, err := env.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, unchanged.Items, 2, "a refused add leaves the plan untouched")

	view, err = env.svc.AddExercise(ctx, AddExerciseRequest{PlanID: p.ID, StageID: st.ID, ExerciseID: exs[2].ID, Force: true})
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetOver, view.Schedule.Status)
	assert.Equal(t, -10, view.Schedule.RemainingSecs)
}

func TestLessonPlanService_AddExercise_ExerciseMustBelongToStage(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	warm, _ := env.seedStage(t, "Warm-up")
	_, coreEx := env.seedStage(t, "Core", 300)

	p, err := env.svc.Create(ctx, "Lesson", "")
	require.NoError(t, err)

	_, err = env.svc.AddExercise(ctx, AddExerciseRequest{PlanID: p.ID, StageID: warm.ID, ExerciseID: coreEx[0].ID})
	assert.ErrorIs(t, err, ErrExerciseNotInStage)

	_, err = env.svc.AddExercise(ctx, AddExerciseRequest{PlanID: "nope", StageID: warm.ID, ExerciseID: coreEx[0].ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonPlanService_SetBudget_ChangesClassification(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Practice", 1800)

	p, err := env.svc.Create(ctx, "Short", "")
	require.NoError(t, err)
	env.add(t, p.ID, st, exs[0])

	view, err := env.svc.SetBudget(ctx, p.ID, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, view.Plan.BudgetSeconds)
	assert.Equal(t, domain.BudgetNear, view.Schedule.Status)

	view, err = env.svc.SetBudget(ctx, p.ID, 1200)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetOver, view.Schedule.Status)

	_, err = env.svc.SetBudget(ctx, p.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestLessonPlanService_SetStartTime_WrapsPastMidnight(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Night", 1800, 1800)

	p, err := env.svc.Create(ctx, "Night class", "")
	require.NoError(t, err)
	env.add(t, p.ID, st, exs[0])
	env.add(t, p.ID, st, exs[1])

	view, err := env.svc.SetStartTime(ctx, p.ID, "23:30")
	require.NoError(t, err)
	assert.Equal(t, "23:30:00", view.Plan.StartTime)
	assert.Equal(t, "00:00:00", view.Schedule.ItemStart[view.Plan.Items[1].ID])
	assert.Equal(t, "00:30:00", view.Schedule.EndTime)

	_, err = env.svc.SetStartTime(ctx, p.ID, "7pm")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestLessonPlanService_DeclareStage_TopAndBottom(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	a, _ := env.seedStage(t, "A")
	b, _ := env.seedStage(t, "B")
	c, _ := env.seedStage(t, "C")

	p, err := env.svc.Create(ctx, "Lesson", "10:00")
	require.NoError(t, err)

	_, err = env.svc.DeclareStage(ctx, p.ID, b.ID, domain.PositionBottom)
	require.NoError(t, err)
	_, err = env.svc.DeclareStage(ctx, p.ID, c.ID, domain.PositionBottom)
	require.NoError(t, err)
	view, err := env.svc.DeclareStage(ctx, p.ID, a.ID, domain.PositionTop)
	require.NoError(t, err)

	assert.Equal(t, []string{a.ID, b.ID, c.ID}, view.Schedule.StageOrder)
	for _, id := range view.Schedule.StageOrder {
		assert.Equal(t, "10:00:00", view.Schedule.StageStart[id], "empty stages start at the running clock")
	}

	_, err = env.svc.DeclareStage(ctx, p.ID, "missing", domain.PositionTop)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonPlanService_DropStage_RemovesItemsAndDeclaration(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	warm, warmEx := env.seedStage(t, "Warm-up", 120, 180)
	core, coreEx := env.seedStage(t, "Core", 600)

	p, err := env.svc.Create(ctx, "Lesson", "")
	require.NoError(t, err)
	env.add(t, p.ID, warm, warmEx[0])
	env.add(t, p.ID, warm, warmEx[1])
	env.add(t, p.ID, core, coreEx[0])

	view, err := env.svc.DropStage(ctx, p.ID, warm.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{coreEx[0].Name}, itemNames(view.Plan.Items))
	assert.Equal(t, []string{core.ID}, view.Plan.StageOrder)
	assert.Equal(t, 600, view.Plan.TotalDuration)

	_, err = env.svc.DropStage(ctx, p.ID, warm.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonPlanService_RemoveAndMoveItem(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	warm, warmEx := env.seedStage(t, "Warm-up", 120, 180, 240)
	core, coreEx := env.seedStage(t, "Core", 600)

	p, err := env.svc.Create(ctx, "Lesson", "")
	require.NoError(t, err)
	for _, ex := range warmEx {
		env.add(t, p.ID, warm, ex)
	}
	view := env.add(t, p.ID, core, coreEx[0])
	items := view.Plan.Items

	view, err = env.svc.MoveItem(ctx, p.ID, items[2].ID, domain.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, itemNames(items), itemNames(view.Plan.Items), "cannot cross into the next stage")

	view, err = env.svc.MoveItem(ctx, p.ID, items[2].ID, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{warmEx[0].Name, warmEx[2].Name, warmEx[1].Name, coreEx[0].Name}, itemNames(view.Plan.Items))

	view, err = env.svc.RemoveItem(ctx, p.ID, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{warmEx[2].Name, warmEx[1].Name, coreEx[0].Name}, itemNames(view.Plan.Items))
	assert.Equal(t, 1020, view.Plan.TotalDuration)
	assert.Equal(t, 1, view.Plan.Items[0].Order)

	_, err = env.svc.RemoveItem(ctx, p.ID, items[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.svc.MoveItem(ctx, p.ID, "missing", domain.DirectionUp)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonPlanService_MoveStage_MovesBlockAndDeclaredOrder(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	warm, warmEx := env.seedStage(t, "Warm-up", 120, 180)
	core, coreEx := env.seedStage(t, "Core", 600)
	cool, _ := env.seedStage(t, "Cool-down")

	p, err := env.svc.Create(ctx, "Lesson", "09:00")
	require.NoError(t, err)
	env.add(t, p.ID, warm, warmEx[0])
	env.add(t, p.ID, warm, warmEx[1])
	env.add(t, p.ID, core, coreEx[0])
	_, err = env.svc.DeclareStage(ctx, p.ID, cool.ID, domain.PositionBottom)
	require.NoError(t, err)

	view, err := env.svc.MoveStage(ctx, p.ID, core.ID, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{coreEx[0].Name, warmEx[0].Name, warmEx[1].Name}, itemNames(view.Plan.Items))
	assert.Equal(t, []string{core.ID, warm.ID, cool.ID}, view.Plan.StageOrder)
	assert.Equal(t, "09:10:00", view.Schedule.StageStart[warm.ID])

	view, err = env.svc.MoveStage(ctx, p.ID, cool.ID, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{core.ID, cool.ID, warm.ID}, view.Plan.StageOrder, "empty stages move through the declared order")
	assert.Equal(t, "09:10:00", view.Schedule.StageStart[cool.ID])
	assert.Equal(t, itemNames(view.Schedule.OrderedItems()), itemNames(view.Plan.Items))

	view, err = env.svc.MoveStage(ctx, p.ID, core.ID, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{core.ID, cool.ID, warm.ID}, view.Plan.StageOrder, "first stage cannot move up")
}

func TestLessonPlanService_Rename(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	a, err := env.svc.Create(ctx, "Alpha", "")
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "Beta", "")
	require.NoError(t, err)

	_, err = env.svc.Rename(ctx, a.ID, "beta")
	assert.ErrorIs(t, err, ErrTitleTaken)

	view, err := env.svc.Rename(ctx, a.ID, "ALPHA")
	require.NoError(t, err, "a plan may keep its own title in another case")
	assert.Equal(t, "ALPHA", view.Plan.Title)
}

func TestLessonPlanService_Duplicate_NumbersCopies(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Practice", 300)

	p, err := env.svc.Create(ctx, "Base", "")
	require.NoError(t, err)
	env.add(t, p.ID, st, exs[0])

	first, err := env.svc.Duplicate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Base (copy 1)", first.Title)
	assert.NotEqual(t, p.ID, first.ID)

	second, err := env.svc.Duplicate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Base (copy 2)", second.Title)

	original, err := env.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	copied, err := env.svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, copied.Items, 1)
	assert.NotEqual(t, original.Items[0].ID, copied.Items[0].ID, "item IDs are regenerated")
	assert.Equal(t, original.Items[0].ExerciseName, copied.Items[0].ExerciseName)
	assert.Equal(t, original.StageOrder, copied.StageOrder)
}

func TestLessonPlanService_Import_RegeneratesIDsAndDedupesTitle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Shared", "")
	require.NoError(t, err)

	warm := testutil.NewTestStage("Warm-up")
	ex := testutil.NewTestExercise(warm.ID, "Breathing", testutil.WithDuration(150))
	src := testutil.NewTestPlan("Shared",
		testutil.WithStartTime("08:15"),
		testutil.WithBudgetSeconds(0),
		testutil.WithItems(testutil.NewTestPlanItem(warm, ex)),
	)

	imported, err := env.svc.Import(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "Shared (copy 1)", imported.Title)
	assert.NotEqual(t, src.ID, imported.ID)
	assert.NotEqual(t, src.Items[0].ID, imported.Items[0].ID)
	assert.Equal(t, "08:15:00", imported.StartTime)
	assert.Equal(t, domain.DefaultLessonDuration, imported.BudgetSeconds)
	assert.Equal(t, []string{warm.ID}, imported.StageOrder, "stages found in items are declared")
	assert.Equal(t, 150, imported.TotalDuration)

	view, err := env.svc.View(ctx, imported.ID)
	require.NoError(t, err)
	assert.Equal(t, "08:17:30", view.Schedule.EndTime)
}

func TestLessonPlanService_ListAndDelete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Practice", 300)

	a, err := env.svc.Create(ctx, "A", "")
	require.NoError(t, err)
	env.add(t, a.ID, st, exs[0])
	_, err = env.svc.Create(ctx, "B", "")
	require.NoError(t, err)

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	counts := map[string]int{}
	for _, row := range list {
		counts[row.Plan.Title] = row.ItemCount
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 0}, counts)

	require.NoError(t, env.svc.Delete(ctx, a.ID))
	_, err = env.svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonPlanService_SaveFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	seed := setupEnvWithUoW(t, database, testutil.NewTestUoW(database))
	ctx := context.Background()
	st, exs := seed.seedStage(t, "Practice", 300, 400)

	p, err := seed.svc.Create(ctx, "Lesson", "")
	require.NoError(t, err)
	seed.add(t, p.ID, st, exs[0])

	// Exec calls in a save: #1 = plan update, #2 = clear items, #3.. = item inserts.
	// Fail on #4, the second item insert.
	failing := setupEnvWithUoW(t, database, &testutil.FailingUoW{
		DB:     database,
		FailOn: 4,
		Err:    fmt.Errorf("injected item insert failure"),
	})
	_, err = failing.svc.AddExercise(ctx, AddExerciseRequest{PlanID: p.ID, StageID: st.ID, ExerciseID: exs[1].ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected item insert failure")

	stored, err := seed.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1, "items should survive a failed save")
	assert.Equal(t, 300, stored.TotalDuration)
}

func TestLessonPlanService_ObservesUseCases(t *testing.T) {
	obs := &recordingObserver{}
	env := setupEnv(t, obs)
	ctx := context.Background()
	st, exs := env.seedStage(t, "Practice", 6000)

	p, err := env.svc.Create(ctx, "Lesson", "")
	require.NoError(t, err)
	_, err = env.svc.AddExercise(ctx, AddExerciseRequest{PlanID: p.ID, StageID: st.ID, ExerciseID: exs[0].ID})
	require.ErrorIs(t, err, ErrOverBudget)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-plan", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, p.ID, obs.events[0].Fields["plan_id"])

	assert.Equal(t, "add-exercise", obs.events[1].Name)
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, ErrOverBudget)
	assert.Equal(t, false, obs.events[1].Fields["forced"])
}
