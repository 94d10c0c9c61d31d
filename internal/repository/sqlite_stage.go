package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
)

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo.
func NewSQLiteStageRepo(db db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: db}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	query := `INSERT INTO stages (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM stages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.Stage
	var createdStr, updatedStr string
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("stage: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	var err error
	if s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteStageRepo) List(ctx context.Context) ([]*domain.Stage, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM stages ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.Stage
	for rows.Next() {
		var s domain.Stage
		var createdStr, updatedStr string
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		if s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdStr, updatedStr); err != nil {
			return nil, err
		}
		stages = append(stages, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}

func (r *SQLiteStageRepo) Update(ctx context.Context, s *domain.Stage) error {
	query := `UPDATE stages SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.Description, formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}
	return requireAffected(res, "stage")
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return requireAffected(res, "stage")
}

// requireAffected turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
