package domain

import "time"

// DefaultLessonDuration is the lesson budget ceiling in seconds (90 minutes).
const DefaultLessonDuration = 5400

// DefaultWarningBand is how close to the ceiling a plan must be to count as near the limit.
const DefaultWarningBand = 600

// PlanItem is one placement of an exercise under a stage inside a plan.
// StageName and ExerciseName are snapshots taken at insertion time and are
// never refreshed from the catalog.
type PlanItem struct {
	ID           string
	StageID      string
	StageName    string
	ExerciseID   string
	ExerciseName string
	Duration     int
	Order        int
}

// LessonPlan is a persisted plan: the flat item sequence plus the declared
// stage order and the lesson start time.
type LessonPlan struct {
	ID            string
	Title         string
	StartTime     string
	StageOrder    []string
	Items         []PlanItem
	TotalDuration int
	BudgetSeconds int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StageIDs returns the distinct stage IDs referenced by Items in first-encounter order.
func (p *LessonPlan) StageIDs() []string {
	seen := make(map[string]bool, len(p.Items))
	var ids []string
	for _, it := range p.Items {
		if seen[it.StageID] {
			continue
		}
		seen[it.StageID] = true
		ids = append(ids, it.StageID)
	}
	return ids
}
