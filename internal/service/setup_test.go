package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/alexanderramin/lessonplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sql.DB
	stages    *repository.SQLiteStageRepo
	exercises *repository.SQLiteExerciseRepo
	plans     *repository.SQLiteLessonPlanRepo
	catalog   CatalogService
	svc       LessonPlanService
}

func setupEnv(t *testing.T, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return setupEnvWithUoW(t, database, testutil.NewTestUoW(database), observers...)
}

func setupEnvWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	env := &testEnv{
		db:        database,
		stages:    repository.NewSQLiteStageRepo(database),
		exercises: repository.NewSQLiteExerciseRepo(database),
		plans:     repository.NewSQLiteLessonPlanRepo(database),
	}
	env.catalog = NewCatalogService(env.stages, env.exercises, uow, observers...)
	env.svc = NewLessonPlanService(env.plans, env.stages, env.exercises, uow, DefaultPlanDefaults(), observers...)
	return env
}

// seedStage stores a stage with one exercise per duration.
func (e *testEnv) seedStage(t *testing.T, name string, durations ...int) (*domain.Stage, []*domain.Exercise) {
	t.Helper()
	ctx := context.Background()
	st := testutil.NewTestStage(name)
	require.NoError(t, e.stages.Create(ctx, st))

	var exs []*domain.Exercise
	for i, d := range durations {
		ex := testutil.NewTestExercise(st.ID, name+" exercise "+string(rune('A'+i)), testutil.WithDuration(d))
		require.NoError(t, e.exercises.Create(ctx, ex))
		exs = append(exs, ex)
	}
	return st, exs
}

func (e *testEnv) add(t *testing.T, planID string, st *domain.Stage, ex *domain.Exercise) *PlanView {
	t.Helper()
	view, err := e.svc.AddExercise(context.Background(), AddExerciseRequest{
		PlanID:     planID,
		StageID:    st.ID,
		ExerciseID: ex.ID,
	})
	require.NoError(t, err)
	return view
}

func itemNames(items []domain.PlanItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ExerciseName
	}
	return out
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}
