package planner

import "github.com/alexanderramin/lessonplan/internal/domain"

// Budget holds the lesson-length ceiling and the warning band below it, both in seconds.
type Budget struct {
	Ceiling     int
	WarningBand int
}

// DefaultBudget is a 90-minute lesson with a 10-minute warning band.
func DefaultBudget() Budget {
	return Budget{Ceiling: domain.DefaultLessonDuration, WarningBand: domain.DefaultWarningBand}
}

// TotalDuration sums item durations. An empty slice totals 0.
func TotalDuration(items []domain.PlanItem) int {
	total := 0
	for _, it := range items {
		total += it.Duration
	}
	return total
}

// CanAdd reports whether currentTotal+candidate stays within ceiling.
func CanAdd(currentTotal, candidate, ceiling int) bool {
	return currentTotal+candidate <= ceiling
}

// Allows is CanAdd against b's ceiling.
func (b Budget) Allows(currentTotal, candidate int) bool {
	return CanAdd(currentTotal, candidate, b.Ceiling)
}

// IsOver reports total > ceiling.
func (b Budget) IsOver(total int) bool {
	return total > b.Ceiling
}

// IsNear reports ceiling-band < total <= ceiling.
func (b Budget) IsNear(total int) bool {
	return total > b.Ceiling-b.WarningBand && total <= b.Ceiling
}

// Classify maps a total onto ok / near_limit / over.
func (b Budget) Classify(total int) domain.BudgetStatus {
	switch {
	case b.IsOver(total):
		return domain.BudgetOver
	case b.IsNear(total):
		return domain.BudgetNear
	default:
		return domain.BudgetOK
	}
}

// Remaining is the headroom left under the ceiling; negative when over.
func (b Budget) Remaining(total int) int {
	return b.Ceiling - total
}
