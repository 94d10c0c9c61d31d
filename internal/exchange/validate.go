package exchange

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/timeofday"
)

// ErrInvalidSchema wraps every validation failure returned by AsError.
var ErrInvalidSchema = errors.New("invalid import file")

// ValidatePlanDocument checks doc before conversion and returns every problem found.
func ValidatePlanDocument(doc *PlanDocument) []error {
	var errs []error

	if doc.Title == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if doc.StartTime != "" && !timeofday.IsValid(doc.StartTime) {
		errs = append(errs, fmt.Errorf("startTime: invalid time %q (expected HH:MM or HH:MM:SS)", doc.StartTime))
	}
	if doc.BudgetSeconds < 0 {
		errs = append(errs, fmt.Errorf("budgetSeconds must not be negative"))
	}

	declared := make(map[string]bool, len(doc.StageOrder))
	for i, id := range doc.StageOrder {
		if id == "" {
			errs = append(errs, fmt.Errorf("stageOrder[%d]: stage id is required", i))
			continue
		}
		if declared[id] {
			errs = append(errs, fmt.Errorf("stageOrder[%d]: duplicate stage id %q", i, id))
		}
		declared[id] = true
	}

	orders := make(map[int]bool, len(doc.Items))
	for i, it := range doc.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if it.StageID == "" {
			errs = append(errs, fmt.Errorf("%s.stageId is required", prefix))
		}
		if it.ExerciseName == "" {
			errs = append(errs, fmt.Errorf("%s.exerciseName is required", prefix))
		}
		if it.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s.duration must not be negative", prefix))
		}
		if it.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must not be negative", prefix))
		} else if it.Order > 0 {
			if orders[it.Order] {
				errs = append(errs, fmt.Errorf("%s.order: duplicate order %d", prefix, it.Order))
			}
			orders[it.Order] = true
		}
	}

	if len(errs) == 0 {
		errs = append(errs, validateContiguity(sortedItems(doc.Items))...)
	}
	return errs
}

// validateContiguity reports a stage whose items are split by another stage's.
func validateContiguity(items []PlanItemJSON) []error {
	var errs []error
	closed := make(map[string]bool)
	for i, it := range items {
		if i > 0 && items[i-1].StageID != it.StageID {
			closed[items[i-1].StageID] = true
		}
		if closed[it.StageID] {
			errs = append(errs, fmt.Errorf("items: stage %q is not contiguous (item %q)", it.StageID, it.ExerciseName))
			closed[it.StageID] = false
		}
	}
	return errs
}

// ValidateCatalogDocument checks a catalog seed file.
func ValidateCatalogDocument(doc *CatalogDocument) []error {
	var errs []error
	if len(doc.Stages) == 0 {
		errs = append(errs, fmt.Errorf("stages: at least one stage is required"))
	}
	for i, st := range doc.Stages {
		if st.Name == "" {
			errs = append(errs, fmt.Errorf("stages[%d].name is required", i))
		}
		for j, ex := range st.Exercises {
			prefix := fmt.Sprintf("stages[%d].exercises[%d]", i, j)
			if ex.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			}
			if ex.Duration <= 0 {
				errs = append(errs, fmt.Errorf("%s.duration must be positive", prefix))
			}
		}
	}
	return errs
}

// AsError folds validation errors into one error wrapping ErrInvalidSchema,
// or returns nil when errs is empty.
func AsError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(errs...))
}
