package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	stages    repository.StageRepo
	exercises repository.ExerciseRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewCatalogService(
	stages repository.StageRepo,
	exercises repository.ExerciseRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		stages:    stages,
		exercises: exercises,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) CreateStage(ctx context.Context, st *domain.Stage) error {
	if err := prepareStage(st); err != nil {
		return err
	}
	return s.stages.Create(ctx, st)
}

func (s *catalogService) GetStage(ctx context.Context, id string) (*domain.Stage, error) {
	st, err := s.stages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Exercises, err = s.exercises.ListByStage(ctx, st.ID); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *catalogService) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	stages, err := s.stages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range stages {
		if st.Exercises, err = s.exercises.ListByStage(ctx, st.ID); err != nil {
			return nil, err
		}
	}
	return stages, nil
}

func (s *catalogService) UpdateStage(ctx context.Context, st *domain.Stage) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return ErrNameRequired
	}
	st.UpdatedAt = time.Now().UTC()
	return s.stages.Update(ctx, st)
}

func (s *catalogService) DeleteStage(ctx context.Context, id string) error {
	return s.stages.Delete(ctx, id)
}

func (s *catalogService) CreateExercise(ctx context.Context, e *domain.Exercise) error {
	if err := prepareExercise(e); err != nil {
		return err
	}
	if _, err := s.stages.GetByID(ctx, e.StageID); err != nil {
		return err
	}
	return s.exercises.Create(ctx, e)
}

func (s *catalogService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

func (s *catalogService) UpdateExercise(ctx context.Context, e *domain.Exercise) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return ErrNameRequired
	}
	if e.Duration <= 0 {
		return ErrInvalidDuration
	}
	e.UpdatedAt = time.Now().UTC()
	return s.exercises.Update(ctx, e)
}

func (s *catalogService) DeleteExercise(ctx context.Context, id string) error {
	return s.exercises.Delete(ctx, id)
}

func (s *catalogService) ImportStages(ctx context.Context, stages []*domain.Stage) (result *CatalogImportResult, err error) {
	startedAt := time.Now().UTC()
	result = &CatalogImportResult{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-catalog",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"stage_count":    result.StageCount,
				"exercise_count": result.ExerciseCount,
			},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStages := repository.NewSQLiteStageRepo(tx)
		txExercises := repository.NewSQLiteExerciseRepo(tx)

		for _, st := range stages {
			if err := prepareStage(st); err != nil {
				return fmt.Errorf("stage %q: %w", st.Name, err)
			}
			if err := txStages.Create(ctx, st); err != nil {
				return err
			}
			for _, e := range st.Exercises {
				e.StageID = st.ID
				if err := prepareExercise(e); err != nil {
					return fmt.Errorf("exercise %q in stage %q: %w", e.Name, st.Name, err)
				}
				if err := txExercises.Create(ctx, e); err != nil {
					return err
				}
				result.ExerciseCount++
			}
			result.StageCount++
		}
		return nil
	})
	if err != nil {
		return &CatalogImportResult{}, err
	}
	return result, nil
}

func prepareStage(st *domain.Stage) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return ErrNameRequired
	}
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	return nil
}

func prepareExercise(e *domain.Exercise) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return ErrNameRequired
	}
	if e.Duration <= 0 {
		return ErrInvalidDuration
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}
