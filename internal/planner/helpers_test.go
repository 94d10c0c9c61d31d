package planner

import (
	"fmt"

	"github.com/alexanderramin/lessonplan/internal/domain"
)

func item(id, stageID string, duration int) domain.PlanItem {
	return domain.PlanItem{
		ID:           id,
		StageID:      stageID,
		StageName:    "Stage " + stageID,
		ExerciseID:   "ex-" + id,
		ExerciseName: "Exercise " + id,
		Duration:     duration,
	}
}

func ids(items []domain.PlanItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func orders(items []domain.PlanItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Order
	}
	return out
}

// twoStagePlan returns stage A with 2 items followed by stage B with 3.
func twoStagePlan() []domain.PlanItem {
	return Renormalize([]domain.PlanItem{
		item("a1", "A", 60),
		item("a2", "A", 120),
		item("b1", "B", 180),
		item("b2", "B", 240),
		item("b3", "B", 300),
	})
}

func seqOf(n int, stages int) []domain.PlanItem {
	var items []domain.PlanItem
	for i := 0; i < n; i++ {
		stage := fmt.Sprintf("S%d", i*stages/max(n, 1))
		items = append(items, item(fmt.Sprintf("i%d", i), stage, (i+1)*30))
	}
	return items
}
