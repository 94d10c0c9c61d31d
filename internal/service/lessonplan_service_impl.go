package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/alexanderramin/lessonplan/internal/timeofday"
	"github.com/google/uuid"
)

// PlanDefaults seeds new plans and supplies the warning band used when
// classifying a plan's total against its budget.
type PlanDefaults struct {
	BudgetSeconds int
	WarningBand   int
	StartTime     string
}

// DefaultPlanDefaults is a 90-minute lesson starting at 09:00.
func DefaultPlanDefaults() PlanDefaults {
	return PlanDefaults{
		BudgetSeconds: domain.DefaultLessonDuration,
		WarningBand:   domain.DefaultWarningBand,
		StartTime:     "09:00:00",
	}
}

type lessonPlanService struct {
	plans     repository.LessonPlanRepo
	stages    repository.StageRepo
	exercises repository.ExerciseRepo
	uow       db.UnitOfWork
	defaults  PlanDefaults
	observer  UseCaseObserver
}

func NewLessonPlanService(
	plans repository.LessonPlanRepo,
	stages repository.StageRepo,
	exercises repository.ExerciseRepo,
	uow db.UnitOfWork,
	defaults PlanDefaults,
	observers ...UseCaseObserver,
) LessonPlanService {
	return &lessonPlanService{
		plans:     plans,
		stages:    stages,
		exercises: exercises,
		uow:       uow,
		defaults:  defaults,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *lessonPlanService) Create(ctx context.Context, title string, startTime string) (plan *domain.LessonPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": title}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	start, err := canonicalStart(domain.CoalesceStr(startTime, s.defaults.StartTime))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.LessonPlan{
		ID:            uuid.New().String(),
		Title:         title,
		StartTime:     start,
		StageOrder:    []string{},
		BudgetSeconds: s.budgetCeiling(0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteLessonPlanRepo(tx)
		taken, err := txPlans.TitleExists(ctx, p.Title, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrTitleTaken
		}
		return txPlans.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = p.ID
	return p, nil
}

func (s *lessonPlanService) Get(ctx context.Context, id string) (*domain.LessonPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *lessonPlanService) List(ctx context.Context) ([]repository.LessonPlanSummary, error) {
	return s.plans.List(ctx)
}

func (s *lessonPlanService) View(ctx context.Context, id string) (*PlanView, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.project(p)
}

func (s *lessonPlanService) Rename(ctx context.Context, id string, title string) (*PlanView, error) {
	title = strings.TrimSpace(title)
	return s.mutate(ctx, "rename-plan", id, map[string]any{"title": title},
		func(ctx context.Context, tx db.DBTX, p *domain.LessonPlan) error {
			if title == "" {
				return ErrTitleRequired
			}
			taken, err := repository.NewSQLiteLessonPlanRepo(tx).TitleExists(ctx, title, p.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrTitleTaken
			}
			p.Title = title
			return nil
		})
}

func (s *lessonPlanService) Delete(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

func (s *lessonPlanService) Duplicate(ctx context.Context, id string) (plan *domain.LessonPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source_plan_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "duplicate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteLessonPlanRepo(tx)
		src, err := txPlans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		title, err := copyTitle(ctx, txPlans, src.Title)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		cp := *src
		cp.ID = uuid.New().String()
		cp.Title = title
		cp.StageOrder = append([]string{}, src.StageOrder...)
		cp.Items = freshItemIDs(src.Items)
		cp.CreatedAt = now
		cp.UpdatedAt = now
		if err := txPlans.Create(ctx, &cp); err != nil {
			return err
		}
		plan = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = plan.ID
	return plan, nil
}

// Import stores p as a new plan with fresh IDs. A title already in use gets
// a "(copy N)" suffix instead of failing.
func (s *lessonPlanService) Import(ctx context.Context, p *domain.LessonPlan) (plan *domain.LessonPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": p.Title, "item_count": len(p.Items)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	start, err := canonicalStart(domain.CoalesceStr(p.StartTime, s.defaults.StartTime))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	np := &domain.LessonPlan{
		ID:            uuid.New().String(),
		StartTime:     start,
		BudgetSeconds: s.budgetCeiling(p.BudgetSeconds),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := freshItemIDs(p.Items)
	np.StageOrder = planner.StageDisplayOrder(p.StageOrder, items)
	np.Items = planner.Align(items, np.StageOrder)
	np.TotalDuration = planner.TotalDuration(np.Items)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteLessonPlanRepo(tx)
		taken, err := txPlans.TitleExists(ctx, title, "")
		if err != nil {
			return err
		}
		np.Title = title
		if taken {
			if np.Title, err = copyTitle(ctx, txPlans, title); err != nil {
				return err
			}
		}
		return txPlans.Create(ctx, np)
	})
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = np.ID
	return np, nil
}

func (s *lessonPlanService) SetStartTime(ctx context.Context, id string, startTime string) (*PlanView, error) {
	return s.mutate(ctx, "set-start-time", id, map[string]any{"start_time": startTime},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			start, err := canonicalStart(startTime)
			if err != nil {
				return err
			}
			p.StartTime = start
			return nil
		})
}

func (s *lessonPlanService) SetBudget(ctx context.Context, id string, seconds int) (*PlanView, error) {
	return s.mutate(ctx, "set-budget", id, map[string]any{"budget_seconds": seconds},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			if seconds <= 0 {
				return ErrInvalidDuration
			}
			p.BudgetSeconds = seconds
			return nil
		})
}

func (s *lessonPlanService) DeclareStage(ctx context.Context, planID, stageID string, pos domain.StagePosition) (*PlanView, error) {
	return s.mutate(ctx, "declare-stage", planID, map[string]any{"stage_id": stageID, "position": string(pos)},
		func(ctx context.Context, tx db.DBTX, p *domain.LessonPlan) error {
			if _, err := repository.NewSQLiteStageRepo(tx).GetByID(ctx, stageID); err != nil {
				return err
			}
			p.StageOrder = planner.DeclareStage(p.StageOrder, stageID, pos)
			return nil
		})
}

func (s *lessonPlanService) DropStage(ctx context.Context, planID, stageID string) (*PlanView, error) {
	return s.mutate(ctx, "drop-stage", planID, map[string]any{"stage_id": stageID},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			if !inPlan(p, stageID) {
				return fmt.Errorf("stage in plan: %w", repository.ErrNotFound)
			}
			p.Items = planner.RemoveStageItems(p.Items, stageID)
			p.StageOrder = planner.UndeclareStage(p.StageOrder, stageID)
			return nil
		})
}

func (s *lessonPlanService) AddExercise(ctx context.Context, req AddExerciseRequest) (*PlanView, error) {
	fields := map[string]any{
		"stage_id":    req.StageID,
		"exercise_id": req.ExerciseID,
		"forced":      req.Force,
	}
	return s.mutate(ctx, "add-exercise", req.PlanID, fields,
		func(ctx context.Context, tx db.DBTX, p *domain.LessonPlan) error {
			stage, err := repository.NewSQLiteStageRepo(tx).GetByID(ctx, req.StageID)
			if err != nil {
				return err
			}
			ex, err := repository.NewSQLiteExerciseRepo(tx).GetByID(ctx, req.ExerciseID)
			if err != nil {
				return err
			}
			if ex.StageID != stage.ID {
				return ErrExerciseNotInStage
			}

			budget := s.budgetFor(p)
			if !req.Force && !budget.Allows(planner.TotalDuration(p.Items), ex.Duration) {
				return fmt.Errorf("%w: %s left, exercise takes %s", ErrOverBudget,
					timeofday.FormatDuration(budget.Remaining(planner.TotalDuration(p.Items))),
					timeofday.FormatDuration(ex.Duration))
			}

			p.StageOrder = planner.DeclareStage(p.StageOrder, stage.ID, domain.PositionBottom)
			p.Items = planner.InsertIntoStage(p.Items, stage.ID, planner.NewPlanItem(stage, ex))
			return nil
		})
}

func (s *lessonPlanService) RemoveItem(ctx context.Context, planID, itemID string) (*PlanView, error) {
	return s.mutate(ctx, "remove-item", planID, map[string]any{"item_id": itemID},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			if !hasItem(p, itemID) {
				return fmt.Errorf("plan item: %w", repository.ErrNotFound)
			}
			p.Items = planner.Remove(p.Items, itemID)
			return nil
		})
}

func (s *lessonPlanService) MoveItem(ctx context.Context, planID, itemID string, dir domain.Direction) (*PlanView, error) {
	return s.mutate(ctx, "move-item", planID, map[string]any{"item_id": itemID, "direction": string(dir)},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			if !hasItem(p, itemID) {
				return fmt.Errorf("plan item: %w", repository.ErrNotFound)
			}
			p.Items = planner.MoveItemWithinStage(p.Items, itemID, dir)
			return nil
		})
}

// MoveStage moves the stage in both the item sequence and the declared
// order. Every stage is declared first so empty and undeclared stages move
// the same way.
func (s *lessonPlanService) MoveStage(ctx context.Context, planID, stageID string, dir domain.Direction) (*PlanView, error) {
	return s.mutate(ctx, "move-stage", planID, map[string]any{"stage_id": stageID, "direction": string(dir)},
		func(_ context.Context, _ db.DBTX, p *domain.LessonPlan) error {
			if !inPlan(p, stageID) {
				return fmt.Errorf("stage in plan: %w", repository.ErrNotFound)
			}
			order := planner.StageDisplayOrder(p.StageOrder, p.Items)
			p.StageOrder = planner.MoveInStageOrder(order, stageID, dir)
			p.Items = planner.MoveStage(p.Items, stageID, dir)
			return nil
		})
}

// mutate loads the plan inside a transaction, applies fn, realigns the item
// sequence with the stage order and saves the result.
func (s *lessonPlanService) mutate(
	ctx context.Context,
	name string,
	planID string,
	fields map[string]any,
	fn func(ctx context.Context, tx db.DBTX, p *domain.LessonPlan) error,
) (view *PlanView, err error) {
	startedAt := time.Now().UTC()
	fields["plan_id"] = planID
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteLessonPlanRepo(tx)
		p, err := txPlans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, p); err != nil {
			return err
		}

		p.Items = planner.Align(p.Items, p.StageOrder)
		p.TotalDuration = planner.TotalDuration(p.Items)
		p.UpdatedAt = time.Now().UTC()
		if err := txPlans.Update(ctx, p); err != nil {
			return err
		}
		view, err = s.project(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["total_duration"] = view.Schedule.TotalDuration
	return view, nil
}

func (s *lessonPlanService) project(p *domain.LessonPlan) (*PlanView, error) {
	start, err := timeofday.Parse(p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("plan %s start time %q: %w", p.ID, p.StartTime, ErrInvalidTime)
	}
	return &PlanView{
		Plan:     p,
		Schedule: planner.Project(p.Items, p.StageOrder, start, s.budgetFor(p)),
	}, nil
}

func (s *lessonPlanService) budgetFor(p *domain.LessonPlan) planner.Budget {
	return planner.Budget{
		Ceiling:     s.budgetCeiling(p.BudgetSeconds),
		WarningBand: s.defaults.WarningBand,
	}
}

func (s *lessonPlanService) budgetCeiling(seconds int) int {
	if seconds > 0 {
		return seconds
	}
	if s.defaults.BudgetSeconds > 0 {
		return s.defaults.BudgetSeconds
	}
	return domain.DefaultLessonDuration
}

// canonicalStart validates an HH:MM or HH:MM:SS clock time and returns it as HH:MM:SS.
func canonicalStart(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !timeofday.IsValid(s) {
		return "", ErrInvalidTime
	}
	t, err := timeofday.Parse(timeofday.Normalize(s))
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.String(), nil
}

// copyTitle returns "<title> (copy N)" with the smallest N not already taken.
func copyTitle(ctx context.Context, plans repository.LessonPlanRepo, title string) (string, error) {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (copy %d)", title, n)
		taken, err := plans.TitleExists(ctx, candidate, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func freshItemIDs(items []domain.PlanItem) []domain.PlanItem {
	out := make([]domain.PlanItem, len(items))
	for i, it := range items {
		it.ID = uuid.New().String()
		out[i] = it
	}
	return planner.Renormalize(out)
}

func hasItem(p *domain.LessonPlan, itemID string) bool {
	for _, it := range p.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

func inPlan(p *domain.LessonPlan, stageID string) bool {
	for _, id := range planner.StageDisplayOrder(p.StageOrder, p.Items) {
		if id == stageID {
			return true
		}
	}
	return false
}
