package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
)

// SQLiteExerciseRepo implements ExerciseRepo using a SQLite database.
type SQLiteExerciseRepo struct {
	db db.DBTX
}

// NewSQLiteExerciseRepo creates a new SQLiteExerciseRepo.
func NewSQLiteExerciseRepo(db db.DBTX) *SQLiteExerciseRepo {
	return &SQLiteExerciseRepo{db: db}
}

const exerciseColumns = `id, stage_id, name, duration, description, created_at, updated_at`

func (r *SQLiteExerciseRepo) Create(ctx context.Context, e *domain.Exercise) error {
	query := `INSERT INTO exercises (` + exerciseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.StageID,
		e.Name,
		e.Duration,
		e.Description,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

func (r *SQLiteExerciseRepo) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise: %w", ErrNotFound)
	}
	return e, err
}

func (r *SQLiteExerciseRepo) ListByStage(ctx context.Context, stageID string) ([]*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE stage_id = ? ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises by stage: %w", err)
	}
	defer rows.Close()

	var out []*domain.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercises: %w", err)
	}
	return out, nil
}

func (r *SQLiteExerciseRepo) Update(ctx context.Context, e *domain.Exercise) error {
	query := `UPDATE exercises SET name = ?, duration = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.Duration, e.Description, formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	return requireAffected(res, "exercise")
}

func (r *SQLiteExerciseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return requireAffected(res, "exercise")
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*domain.Exercise, error) {
	var e domain.Exercise
	var createdStr, updatedStr string
	err := row.Scan(&e.ID, &e.StageID, &e.Name, &e.Duration, &e.Description, &createdStr, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	if e.CreatedAt, e.UpdatedAt, err = parseTimestamps(createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &e, nil
}
