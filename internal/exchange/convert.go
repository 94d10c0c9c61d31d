package exchange

import (
	"slices"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/planner"
)

// ToPlan turns a validated document into an unsaved plan. IDs are left for
// the service to assign.
func ToPlan(doc *PlanDocument) *domain.LessonPlan {
	items := make([]domain.PlanItem, 0, len(doc.Items))
	for _, it := range sortedItems(doc.Items) {
		items = append(items, domain.PlanItem{
			StageID:      it.StageID,
			StageName:    it.StageName,
			ExerciseID:   it.ExerciseID,
			ExerciseName: it.ExerciseName,
			Duration:     it.Duration,
		})
	}
	items = planner.Renormalize(items)

	return &domain.LessonPlan{
		Title:         doc.Title,
		StartTime:     doc.StartTime,
		BudgetSeconds: doc.BudgetSeconds,
		StageOrder:    append([]string{}, doc.StageOrder...),
		Items:         items,
		TotalDuration: planner.TotalDuration(items),
	}
}

// FromPlan is the export form of p.
func FromPlan(p *domain.LessonPlan) *PlanDocument {
	doc := &PlanDocument{
		Title:         p.Title,
		StartTime:     p.StartTime,
		BudgetSeconds: p.BudgetSeconds,
		StageOrder:    append([]string{}, p.StageOrder...),
		Items:         make([]PlanItemJSON, 0, len(p.Items)),
	}
	for _, it := range planner.Renormalize(p.Items) {
		doc.Items = append(doc.Items, PlanItemJSON{
			StageID:      it.StageID,
			StageName:    it.StageName,
			ExerciseID:   it.ExerciseID,
			ExerciseName: it.ExerciseName,
			Duration:     it.Duration,
			Order:        it.Order,
		})
	}
	return doc
}

// ToStages converts a validated catalog document into unsaved stages.
func ToStages(doc *CatalogDocument) []*domain.Stage {
	stages := make([]*domain.Stage, 0, len(doc.Stages))
	for _, st := range doc.Stages {
		s := &domain.Stage{Name: st.Name, Description: st.Description}
		for _, ex := range st.Exercises {
			s.Exercises = append(s.Exercises, &domain.Exercise{
				Name:        ex.Name,
				Duration:    ex.Duration,
				Description: ex.Description,
			})
		}
		stages = append(stages, s)
	}
	return stages
}

// FromStages is the seed-file form of a catalog.
func FromStages(stages []*domain.Stage) *CatalogDocument {
	doc := &CatalogDocument{Stages: make([]StageJSON, 0, len(stages))}
	for _, s := range stages {
		st := StageJSON{Name: s.Name, Description: s.Description}
		for _, ex := range s.Exercises {
			st.Exercises = append(st.Exercises, ExerciseJSON{
				Name:        ex.Name,
				Duration:    ex.Duration,
				Description: ex.Description,
			})
		}
		doc.Stages = append(doc.Stages, st)
	}
	return doc
}

// sortedItems orders items by their order field when every item carries
// one; otherwise the file order is kept.
func sortedItems(items []PlanItemJSON) []PlanItemJSON {
	out := slices.Clone(items)
	for _, it := range out {
		if it.Order <= 0 {
			return out
		}
	}
	slices.SortStableFunc(out, func(a, b PlanItemJSON) int { return a.Order - b.Order })
	return out
}
