package service

import (
	"context"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/repository"
)

type CatalogService interface {
	CreateStage(ctx context.Context, s *domain.Stage) error
	GetStage(ctx context.Context, id string) (*domain.Stage, error)
	ListStages(ctx context.Context) ([]*domain.Stage, error)
	UpdateStage(ctx context.Context, s *domain.Stage) error
	DeleteStage(ctx context.Context, id string) error

	CreateExercise(ctx context.Context, e *domain.Exercise) error
	GetExercise(ctx context.Context, id string) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, e *domain.Exercise) error
	DeleteExercise(ctx context.Context, id string) error

	// ImportStages creates every stage and its exercises in one transaction.
	ImportStages(ctx context.Context, stages []*domain.Stage) (*CatalogImportResult, error)
}

// CatalogImportResult counts what ImportStages created.
type CatalogImportResult struct {
	StageCount    int
	ExerciseCount int
}

// AddExerciseRequest places a catalog exercise at the end of a stage's block.
type AddExerciseRequest struct {
	PlanID     string
	StageID    string
	ExerciseID string
	// Force adds the exercise even when it would exceed the plan's budget.
	Force bool
}

// PlanView is a plan together with its projected schedule.
type PlanView struct {
	Plan     *domain.LessonPlan
	Schedule planner.Schedule
}

type LessonPlanService interface {
	Create(ctx context.Context, title string, startTime string) (*domain.LessonPlan, error)
	Get(ctx context.Context, id string) (*domain.LessonPlan, error)
	List(ctx context.Context) ([]repository.LessonPlanSummary, error)
	View(ctx context.Context, id string) (*PlanView, error)
	Rename(ctx context.Context, id string, title string) (*PlanView, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*domain.LessonPlan, error)
	Import(ctx context.Context, p *domain.LessonPlan) (*domain.LessonPlan, error)

	SetStartTime(ctx context.Context, id string, startTime string) (*PlanView, error)
	SetBudget(ctx context.Context, id string, seconds int) (*PlanView, error)

	DeclareStage(ctx context.Context, planID, stageID string, pos domain.StagePosition) (*PlanView, error)
	DropStage(ctx context.Context, planID, stageID string) (*PlanView, error)
	AddExercise(ctx context.Context, req AddExerciseRequest) (*PlanView, error)
	RemoveItem(ctx context.Context, planID, itemID string) (*PlanView, error)
	MoveItem(ctx context.Context, planID, itemID string, dir domain.Direction) (*PlanView, error)
	MoveStage(ctx context.Context, planID, stageID string, dir domain.Direction) (*PlanView, error)
}
