package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/alexanderramin/lessonplan/internal/service"
	"github.com/alexanderramin/lessonplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	stages := repository.NewSQLiteStageRepo(db)
	exercises := repository.NewSQLiteExerciseRepo(db)
	plans := repository.NewSQLiteLessonPlanRepo(db)

	return &App{
		Catalog: service.NewCatalogService(stages, exercises, uow),
		Plans:   service.NewLessonPlanService(plans, stages, exercises, uow, service.DefaultPlanDefaults()),
		Budget:  planner.DefaultBudget(),
	}
}

// seedCatalog creates Warm-up (Breathing 2m, Stretch 3m) and Core (Scales 10m).
func seedCatalog(t *testing.T, app *App) (warm, core *domain.Stage) {
	t.Helper()
	ctx := context.Background()
	_, err := app.Catalog.ImportStages(ctx, []*domain.Stage{
		{Name: "Warm-up", Exercises: []*domain.Exercise{{Name: "Breathing", Duration: 120}, {Name: "Stretch", Duration: 180}}},
		{Name: "Core", Exercises: []*domain.Exercise{{Name: "Scales", Duration: 600}}},
	})
	require.NoError(t, err)

	stages, err := app.Catalog.ListStages(ctx)
	require.NoError(t, err)
	for _, s := range stages {
		switch s.Name {
		case "Warm-up":
			warm = s
		case "Core":
			core = s
		}
	}
	return warm, core
}

// executeCmd runs a cobra command and captures stdout/stderr without ANSI codes.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "lessonplan %s\n%s", strings.Join(args, " "), out)
	return out
}

func planByTitle(t *testing.T, app *App, title string) *domain.LessonPlan {
	t.Helper()
	ctx := context.Background()
	id, err := resolvePlanID(ctx, app, title)
	require.NoError(t, err)
	p, err := app.Plans.Get(ctx, id)
	require.NoError(t, err)
	return p
}

func names(items []domain.PlanItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ExerciseName
	}
	return out
}

// --- stage / exercise ---

func TestStageCmd_Lifecycle(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "stage", "add", "Warm", "up", "--description", "get going")
	assert.Contains(t, out, "Created stage Warm up")

	out = mustExec(t, app, "exercise", "add", "warm up", "Breathing", "--duration", "2m30s")
	assert.Contains(t, out, "Added Breathing (2 min 30 sec) to Warm up")

	out = mustExec(t, app, "stage", "list")
	assert.Regexp(t, `Warm up\s+1\s+2 min 30 sec`, out)

	out = mustExec(t, app, "stage", "show", "Warm up")
	assert.Contains(t, out, "get going")
	assert.Contains(t, out, "Breathing")

	mustExec(t, app, "stage", "rename", "Warm up", "Opening")
	out = mustExec(t, app, "stage", "list")
	assert.Contains(t, out, "Opening")

	mustExec(t, app, "stage", "remove", "opening")
	out = mustExec(t, app, "stage", "list")
	assert.Contains(t, out, "No stages found.")
}

func TestExerciseCmd_DurationValidation(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)

	_, err := executeCmd(t, app, "exercise", "add", "Core", "Etude", "--duration", "1500ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number of seconds")

	_, err = executeCmd(t, app, "exercise", "add", "Core", "Etude")
	require.Error(t, err, "--duration is required")
}

func TestExerciseCmd_UpdateAndRemove(t *testing.T) {
	app := testApp(t)
	_, core := seedCatalog(t, app)
	ex := core.Exercises[0]

	out := mustExec(t, app, "exercise", "update", ex.ID[:8], "--duration", "12m", "--name", "Long scales")
	assert.Contains(t, out, "Updated Long scales (12 min)")

	got, err := app.Catalog.GetExercise(context.Background(), ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 720, got.Duration)

	mustExec(t, app, "exercise", "remove", "Long scales")
	_, err = app.Catalog.GetExercise(context.Background(), ex.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- plan building ---

func TestPlanCmd_BuildAndShow(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)

	out := mustExec(t, app, "plan", "new", "Monday", "group", "--start", "17:30")
	assert.Contains(t, out, "Created plan Monday group starting at 17:30:00")

	mustExec(t, app, "plan", "add", "monday group", "--stage", "Core", "--exercise", "Scales")
	mustExec(t, app, "plan", "add", "monday group", "--stage", "Warm-up", "--exercise", "Breathing")
	out = mustExec(t, app, "plan", "add", "monday group", "--stage", "Core", "--exercise", "Scales")

	assert.Contains(t, out, "MONDAY GROUP")
	assert.Regexp(t, `17:30:00\s+1\) Core\s+20 min`, out)
	assert.Regexp(t, `2\s+17:40:00\s+1\.2\) Scales`, out)
	assert.Regexp(t, `17:50:00\s+2\) Warm-up\s+2 min`, out)
	assert.Contains(t, out, "Total 22 min of 90 min")
	assert.Contains(t, out, "● OK")

	out = mustExec(t, app, "plan", "show", "Monday group", "--text")
	assert.Equal(t, strings.Join([]string{
		"1) Core (20 min) starts at 17:30:00",
		"\t1.1) Scales (10 min) starts at 17:30:00",
		"\t1.2) Scales (10 min) starts at 17:40:00",
		"2) Warm-up (2 min) starts at 17:50:00",
		"\t2.1) Breathing (2 min) starts at 17:50:00",
	}, "\n")+"\n", out)

	out = mustExec(t, app, "plan", "list")
	assert.Regexp(t, `Monday group\s+17:30:00\s+3\s+22 min`, out)
}

func TestPlanCmd_AddRefusesOverBudget(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "Tight")
	mustExec(t, app, "plan", "budget", "Tight", "15m")
	mustExec(t, app, "plan", "add", "Tight", "--stage", "Core", "--exercise", "Scales")

	_, err := executeCmd(t, app, "plan", "add", "Tight", "--stage", "Warm-up", "--exercise", "Stretch")
	require.NoError(t, err, "10m + 3m fits in 15m")

	_, err = executeCmd(t, app, "plan", "add", "Tight", "--stage", "Warm-up", "--exercise", "Stretch")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrOverBudget)
	assert.Contains(t, err.Error(), "--force")

	out := mustExec(t, app, "plan", "add", "Tight", "--stage", "Warm-up", "--exercise", "Stretch", "--force")
	assert.Contains(t, out, "● OVER")
	assert.Contains(t, out, "1 min over")
}

func TestPlanCmd_AddNeedsFlagsWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "P")

	_, err := executeCmd(t, app, "plan", "add", "P")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stage and --exercise are required")
}

func TestPlanCmd_AddUsesPickerWhenInteractive(t *testing.T) {
	app := testApp(t)
	_, core := seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "P")

	var offered int
	app.IsInteractive = func() bool { return true }
	app.PickExercise = func(stages []*domain.Stage) (string, string, error) {
		opts, _ := exerciseOptions(stages)
		offered = len(opts)
		return core.ID, core.Exercises[0].ID, nil
	}

	out := mustExec(t, app, "plan", "add", "P")
	assert.Equal(t, 3, offered)
	assert.Contains(t, out, "Scales")
}

func TestPlanCmd_MoveAndRemoveItems(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "P")
	mustExec(t, app, "plan", "add", "P", "--stage", "Warm-up", "--exercise", "Breathing")
	mustExec(t, app, "plan", "add", "P", "--stage", "Warm-up", "--exercise", "Stretch")
	mustExec(t, app, "plan", "add", "P", "--stage", "Core", "--exercise", "Scales")

	mustExec(t, app, "plan", "move", "P", "2", "--direction", "up")
	assert.Equal(t, []string{"Stretch", "Breathing", "Scales"}, names(planByTitle(t, app, "P").Items))

	mustExec(t, app, "plan", "move", "P", "2", "-d", "down")
	assert.Equal(t, []string{"Stretch", "Breathing", "Scales"}, names(planByTitle(t, app, "P").Items),
		"an item does not leave its stage")

	_, err := executeCmd(t, app, "plan", "move", "P", "1", "--direction", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid direction")

	mustExec(t, app, "plan", "remove-item", "P", "1")
	assert.Equal(t, []string{"Breathing", "Scales"}, names(planByTitle(t, app, "P").Items))

	_, err = executeCmd(t, app, "plan", "remove-item", "P", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no item #9")
}

func TestPlanCmd_StageOperations(t *testing.T) {
	app := testApp(t)
	warm, core := seedCatalog(t, app)
	mustExec(t, app, "stage", "add", "Cool-down")
	mustExec(t, app, "plan", "new", "P", "--start", "09:00")
	mustExec(t, app, "plan", "add", "P", "--stage", "Warm-up", "--exercise", "Breathing")
	mustExec(t, app, "plan", "add", "P", "--stage", "Core", "--exercise", "Scales")

	out := mustExec(t, app, "plan", "add-stage", "P", "Cool-down", "--position", "top")
	assert.Regexp(t, `09:00:00\s+1\) Cool-down \(empty\)`, out)

	mustExec(t, app, "plan", "move-stage", "P", "Core", "--direction", "up")
	p := planByTitle(t, app, "P")
	assert.Equal(t, []string{"Scales", "Breathing"}, names(p.Items))
	require.Len(t, p.StageOrder, 3)
	assert.Equal(t, core.ID, p.StageOrder[1])
	assert.Equal(t, warm.ID, p.StageOrder[2])

	mustExec(t, app, "plan", "drop-stage", "P", "Warm-up")
	p = planByTitle(t, app, "P")
	assert.Equal(t, []string{"Scales"}, names(p.Items))
	assert.NotContains(t, p.StageOrder, warm.ID)

	_, err := executeCmd(t, app, "plan", "add-stage", "P", "Core", "--position", "middle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestPlanCmd_StartRenameCopyRemove(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "Base")
	mustExec(t, app, "plan", "add", "Base", "--stage", "Core", "--exercise", "Scales")

	out := mustExec(t, app, "plan", "start", "Base", "23:55")
	assert.Contains(t, out, "ends 00:05:00")

	_, err := executeCmd(t, app, "plan", "start", "Base", "25:00")
	assert.ErrorIs(t, err, service.ErrInvalidTime)

	out = mustExec(t, app, "plan", "copy", "Base")
	assert.Contains(t, out, "Created Base (copy 1)")

	_, err = executeCmd(t, app, "plan", "rename", "Base", "base", "(copy", "1)")
	assert.ErrorIs(t, err, service.ErrTitleTaken)

	mustExec(t, app, "plan", "rename", "Base", "Evening")
	mustExec(t, app, "plan", "remove", "Evening")
	out = mustExec(t, app, "plan", "list")
	assert.NotContains(t, out, "Evening")
	assert.Contains(t, out, "Base (copy 1)")
}

func TestPlanCmd_ExportImportRoundTrip(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	mustExec(t, app, "plan", "new", "Shared", "--start", "08:00")
	mustExec(t, app, "plan", "add", "Shared", "--stage", "Warm-up", "--exercise", "Stretch")
	mustExec(t, app, "plan", "add", "Shared", "--stage", "Core", "--exercise", "Scales")

	path := filepath.Join(t.TempDir(), "shared.json")
	mustExec(t, app, "plan", "export", "Shared", "-o", path)

	out := mustExec(t, app, "plan", "import", path)
	assert.Contains(t, out, "Imported plan Shared (copy 1) with 2 exercises")

	original := planByTitle(t, app, "Shared")
	imported := planByTitle(t, app, "Shared (copy 1)")
	assert.Equal(t, names(original.Items), names(imported.Items))
	assert.Equal(t, original.StartTime, imported.StartTime)
	assert.Equal(t, original.TotalDuration, imported.TotalDuration)

	text := mustExec(t, app, "plan", "export", "Shared", "--format", "text")
	assert.True(t, strings.HasPrefix(text, "1) Warm-up (3 min) starts at 08:00:00"), text)

	_, err := executeCmd(t, app, "plan", "export", "Shared", "--format", "xml")
	require.Error(t, err)
}

func TestPlanCmd_ImportRejectsInvalidFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"","items":[{"stageId":"a","exerciseName":"x","duration":-5}]}`), 0o644))

	_, err := executeCmd(t, app, "plan", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "duration must not be negative")
}

func TestCatalogCmd_ImportAndExport(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stages":[
		{"name":"Warm-up","exercises":[{"name":"Breathing","duration":120}]},
		{"name":"Core","exercises":[{"name":"Scales","duration":600},{"name":"Etude","duration":900}]}
	]}`), 0o644))

	out := mustExec(t, app, "catalog", "import", path)
	assert.Contains(t, out, "Imported 2 stages and 3 exercises")

	out = mustExec(t, app, "catalog", "export")
	assert.Contains(t, out, `"name": "Etude"`)
	assert.Contains(t, out, `"duration": 900`)
}

func TestResolvePlanID_AmbiguousPrefix(t *testing.T) {
	_, err := match("plan", "ab", []string{"abc", "abd"}, []string{"One", "Two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	id, err := match("plan", "two", []string{"abc", "abd"}, []string{"One", "Two"})
	require.NoError(t, err)
	assert.Equal(t, "abd", id)

	_, err = match("plan", "zz", []string{"abc"}, []string{"One"})
	assert.Contains(t, err.Error(), "not found")
}
