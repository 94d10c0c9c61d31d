package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
)

// SQLiteLessonPlanRepo implements LessonPlanRepo using a SQLite database.
// A plan's items are always written as a whole: Update replaces the stored
// sequence, so callers running it outside a transaction risk a partial write.
type SQLiteLessonPlanRepo struct {
	db db.DBTX
}

// NewSQLiteLessonPlanRepo creates a new SQLiteLessonPlanRepo.
func NewSQLiteLessonPlanRepo(db db.DBTX) *SQLiteLessonPlanRepo {
	return &SQLiteLessonPlanRepo{db: db}
}

const planColumns = `id, title, start_time, stage_order, total_duration, budget_seconds, created_at, updated_at`

func (r *SQLiteLessonPlanRepo) Create(ctx context.Context, p *domain.LessonPlan) error {
	order, err := encodeStageOrder(p.StageOrder)
	if err != nil {
		return err
	}
	query := `INSERT INTO lesson_plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.StartTime,
		order,
		p.TotalDuration,
		p.BudgetSeconds,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting lesson plan: %w", err)
	}
	return r.insertItems(ctx, p.ID, p.Items)
}

func (r *SQLiteLessonPlanRepo) GetByID(ctx context.Context, id string) (*domain.LessonPlan, error) {
	query := `SELECT ` + planColumns + ` FROM lesson_plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson plan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return p, nil
}

func (r *SQLiteLessonPlanRepo) List(ctx context.Context) ([]LessonPlanSummary, error) {
	query := `SELECT p.id, p.title, p.start_time, p.stage_order, p.total_duration, p.budget_seconds,
			p.created_at, p.updated_at, COUNT(i.id)
		FROM lesson_plans p
		LEFT JOIN lesson_plan_items i ON i.plan_id = p.id
		GROUP BY p.id
		ORDER BY p.updated_at DESC, p.title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing lesson plans: %w", err)
	}
	defer rows.Close()

	var out []LessonPlanSummary
	for rows.Next() {
		var s LessonPlanSummary
		var orderStr, createdStr, updatedStr string
		if err := rows.Scan(
			&s.Plan.ID, &s.Plan.Title, &s.Plan.StartTime, &orderStr, &s.Plan.TotalDuration,
			&s.Plan.BudgetSeconds, &createdStr, &updatedStr, &s.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scanning lesson plan row: %w", err)
		}
		if err := populatePlan(&s.Plan, orderStr, createdStr, updatedStr); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson plans: %w", err)
	}
	return out, nil
}

func (r *SQLiteLessonPlanRepo) TitleExists(ctx context.Context, title string, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lesson_plans WHERE title = ? COLLATE NOCASE AND id != ?`,
		title, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking lesson plan title: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteLessonPlanRepo) Update(ctx context.Context, p *domain.LessonPlan) error {
	order, err := encodeStageOrder(p.StageOrder)
	if err != nil {
		return err
	}
	query := `UPDATE lesson_plans
		SET title = ?, start_time = ?, stage_order = ?, total_duration = ?, budget_seconds = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.StartTime, order, p.TotalDuration, p.BudgetSeconds, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lesson plan: %w", err)
	}
	if err := requireAffected(res, "lesson plan"); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM lesson_plan_items WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing lesson plan items: %w", err)
	}
	return r.insertItems(ctx, p.ID, p.Items)
}

func (r *SQLiteLessonPlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lesson_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lesson plan: %w", err)
	}
	return requireAffected(res, "lesson plan")
}

func (r *SQLiteLessonPlanRepo) insertItems(ctx context.Context, planID string, items []domain.PlanItem) error {
	query := `INSERT INTO lesson_plan_items
		(id, plan_id, stage_id, stage_name, exercise_id, exercise_name, duration, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, it := range items {
		_, err := r.db.ExecContext(ctx, query,
			it.ID, planID, it.StageID, it.StageName, it.ExerciseID, it.ExerciseName, it.Duration, it.Order,
		)
		if err != nil {
			return fmt.Errorf("inserting lesson plan item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (r *SQLiteLessonPlanRepo) listItems(ctx context.Context, planID string) ([]domain.PlanItem, error) {
	query := `SELECT id, stage_id, stage_name, exercise_id, exercise_name, duration, order_index
		FROM lesson_plan_items WHERE plan_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing lesson plan items: %w", err)
	}
	defer rows.Close()

	var items []domain.PlanItem
	for rows.Next() {
		var it domain.PlanItem
		if err := rows.Scan(&it.ID, &it.StageID, &it.StageName, &it.ExerciseID, &it.ExerciseName, &it.Duration, &it.Order); err != nil {
			return nil, fmt.Errorf("scanning lesson plan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson plan items: %w", err)
	}
	return items, nil
}

func scanPlan(row rowScanner) (*domain.LessonPlan, error) {
	var p domain.LessonPlan
	var orderStr, createdStr, updatedStr string
	err := row.Scan(&p.ID, &p.Title, &p.StartTime, &orderStr, &p.TotalDuration, &p.BudgetSeconds, &createdStr, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning lesson plan: %w", err)
	}
	if err := populatePlan(&p, orderStr, createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &p, nil
}

// populatePlan fills in parsed fields on a LessonPlan after scanning raw strings.
func populatePlan(p *domain.LessonPlan, orderStr, createdStr, updatedStr string) error {
	order, err := decodeStageOrder(orderStr)
	if err != nil {
		return err
	}
	p.StageOrder = order
	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdStr, updatedStr)
	return err
}
