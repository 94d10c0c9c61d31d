package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseTestSetup creates a stage for exercise tests to hang off.
func exerciseTestSetup(t *testing.T) (*SQLiteExerciseRepo, *domain.Stage) {
	t.Helper()
	database := testutil.NewTestDB(t)
	stage := testutil.NewTestStage("Main")
	require.NoError(t, NewSQLiteStageRepo(database).Create(context.Background(), stage))
	return NewSQLiteExerciseRepo(database), stage
}

func TestExerciseRepo_CreateAndGetByID(t *testing.T) {
	repo, stage := exerciseTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestExercise(stage.ID, "Role play", testutil.WithDuration(900), testutil.WithExerciseDescription("pairs"))
	require.NoError(t, repo.Create(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.ID, fetched.StageID)
	assert.Equal(t, "Role play", fetched.Name)
	assert.Equal(t, 900, fetched.Duration)
	assert.Equal(t, "pairs", fetched.Description)
}

func TestExerciseRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := exerciseTestSetup(t)
	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExerciseRepo_CreateRequiresStage(t *testing.T) {
	repo, _ := exerciseTestSetup(t)
	err := repo.Create(context.Background(), testutil.NewTestExercise("no-such-stage", "Orphan"))
	assert.Error(t, err)
}

func TestExerciseRepo_ListByStage(t *testing.T) {
	repo, stage := exerciseTestSetup(t)
	ctx := context.Background()

	e1 := testutil.NewTestExercise(stage.ID, "A")
	e2 := testutil.NewTestExercise(stage.ID, "B")
	e2.CreatedAt = e1.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, e1))
	require.NoError(t, repo.Create(ctx, e2))

	list, err := repo.ListByStage(ctx, stage.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, e1.ID, list[0].ID)

	empty, err := repo.ListByStage(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExerciseRepo_UpdateAndDelete(t *testing.T) {
	repo, stage := exerciseTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestExercise(stage.ID, "Drill")
	require.NoError(t, repo.Create(ctx, e))

	e.Duration = 120
	e.Name = "Quick drill"
	require.NoError(t, repo.Update(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, fetched.Duration)
	assert.Equal(t, "Quick drill", fetched.Name)

	require.NoError(t, repo.Delete(ctx, e.ID))
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}
