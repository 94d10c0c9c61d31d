package testutil

import (
	"time"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/google/uuid"
)

// Stage options
type StageOption func(*domain.Stage)

func WithStageDescription(d string) StageOption {
	return func(s *domain.Stage) {
		s.Description = d
	}
}

func NewTestStage(name string, opts ...StageOption) *domain.Stage {
	now := time.Now().UTC()
	s := &domain.Stage{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exercise options
type ExerciseOption func(*domain.Exercise)

func WithDuration(seconds int) ExerciseOption {
	return func(e *domain.Exercise) {
		e.Duration = seconds
	}
}

func WithExerciseDescription(d string) ExerciseOption {
	return func(e *domain.Exercise) {
		e.Description = d
	}
}

// NewTestExercise creates a 5-minute exercise under stageID.
func NewTestExercise(stageID, name string, opts ...ExerciseOption) *domain.Exercise {
	now := time.Now().UTC()
	e := &domain.Exercise{
		ID:        uuid.New().String(),
		StageID:   stageID,
		Name:      name,
		Duration:  300,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plan options
type PlanOption func(*domain.LessonPlan)

func WithStartTime(hhmmss string) PlanOption {
	return func(p *domain.LessonPlan) {
		p.StartTime = hhmmss
	}
}

func WithStageOrder(ids ...string) PlanOption {
	return func(p *domain.LessonPlan) {
		p.StageOrder = ids
	}
}

func WithBudgetSeconds(secs int) PlanOption {
	return func(p *domain.LessonPlan) {
		p.BudgetSeconds = secs
	}
}

// WithItems sets the item sequence, numbering Order by position and
// recomputing TotalDuration.
func WithItems(items ...domain.PlanItem) PlanOption {
	return func(p *domain.LessonPlan) {
		p.Items = make([]domain.PlanItem, len(items))
		p.TotalDuration = 0
		for i, it := range items {
			it.Order = i + 1
			p.Items[i] = it
			p.TotalDuration += it.Duration
		}
	}
}

func NewTestPlan(title string, opts ...PlanOption) *domain.LessonPlan {
	now := time.Now().UTC()
	p := &domain.LessonPlan{
		ID:            uuid.New().String(),
		Title:         title,
		StartTime:     "09:00:00",
		BudgetSeconds: domain.DefaultLessonDuration,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestPlanItem snapshots stage and exercise into an item with a fresh ID.
func NewTestPlanItem(stage *domain.Stage, ex *domain.Exercise) domain.PlanItem {
	return domain.PlanItem{
		ID:           uuid.New().String(),
		StageID:      stage.ID,
		StageName:    stage.Name,
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Duration:     ex.Duration,
	}
}
