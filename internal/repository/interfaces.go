package repository

import (
	"context"

	"github.com/alexanderramin/lessonplan/internal/domain"
)

// LessonPlanSummary is a list row: plan header plus item count, without items.
type LessonPlanSummary struct {
	Plan      domain.LessonPlan
	ItemCount int
}

type StageRepo interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	List(ctx context.Context) ([]*domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	Delete(ctx context.Context, id string) error
}

type ExerciseRepo interface {
	Create(ctx context.Context, e *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	ListByStage(ctx context.Context, stageID string) ([]*domain.Exercise, error)
	Update(ctx context.Context, e *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

type LessonPlanRepo interface {
	Create(ctx context.Context, p *domain.LessonPlan) error
	GetByID(ctx context.Context, id string) (*domain.LessonPlan, error)
	List(ctx context.Context) ([]LessonPlanSummary, error)
	TitleExists(ctx context.Context, title string, excludeID string) (bool, error)
	Update(ctx context.Context, p *domain.LessonPlan) error
	Delete(ctx context.Context, id string) error
}
