package planner

import (
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/timeofday"
)

// Schedule is the derived view of a plan. It is rebuilt by Project after
// every change and never edited in place.
type Schedule struct {
	StageOrder    []string
	Groups        map[string][]domain.PlanItem
	ItemStart     map[string]string
	StageStart    map[string]string
	StageDuration map[string]int
	StartTime     string
	EndTime       string
	TotalDuration int
	Budget        Budget
	Status        domain.BudgetStatus
	RemainingSecs int
}

// GroupByStage partitions items by stage ID, keeping relative order.
// Stages without items do not appear.
func GroupByStage(items []domain.PlanItem) map[string][]domain.PlanItem {
	groups := make(map[string][]domain.PlanItem)
	for _, it := range items {
		groups[it.StageID] = append(groups[it.StageID], it)
	}
	return groups
}

// StageDisplayOrder lists declared stage IDs first, then any stage found in
// items that was not declared, in first-encounter order. Duplicates are dropped.
func StageDisplayOrder(declared []string, items []domain.PlanItem) []string {
	seen := make(map[string]bool, len(declared))
	order := make([]string, 0, len(declared))
	for _, id := range declared {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, it := range items {
		if !seen[it.StageID] {
			seen[it.StageID] = true
			order = append(order, it.StageID)
		}
	}
	return order
}

// ComputeItemStartTimes walks stages in order and items within each stage,
// assigning the running clock to each item before advancing it by the
// item's duration.
func ComputeItemStartTimes(stageOrder []string, groups map[string][]domain.PlanItem, start timeofday.Time) map[string]string {
	times := make(map[string]string)
	clock := start
	for _, stageID := range stageOrder {
		for _, it := range groups[stageID] {
			times[it.ID] = clock.String()
			clock = clock.Add(it.Duration)
		}
	}
	return times
}

// ComputeStageStartTimes gives a non-empty stage the start of its first item.
// An empty stage starts when every stage before it in stageOrder has
// elapsed, so adjacent empty stages share a start time.
func ComputeStageStartTimes(stageOrder []string, groups map[string][]domain.PlanItem, itemStart map[string]string, start timeofday.Time) map[string]string {
	times := make(map[string]string, len(stageOrder))
	clock := start
	for _, stageID := range stageOrder {
		stageItems := groups[stageID]
		if len(stageItems) == 0 {
			times[stageID] = clock.String()
			continue
		}
		if t, ok := itemStart[stageItems[0].ID]; ok {
			times[stageID] = t
		} else {
			times[stageID] = clock.String()
		}
		clock = clock.Add(TotalDuration(stageItems))
	}
	return times
}

// Project computes the full Schedule for a plan snapshot.
func Project(items []domain.PlanItem, declared []string, start timeofday.Time, budget Budget) Schedule {
	order := StageDisplayOrder(declared, items)
	groups := GroupByStage(items)
	itemStart := ComputeItemStartTimes(order, groups, start)

	durations := make(map[string]int, len(groups))
	for id, g := range groups {
		durations[id] = TotalDuration(g)
	}
	total := TotalDuration(items)

	return Schedule{
		StageOrder:    order,
		Groups:        groups,
		ItemStart:     itemStart,
		StageStart:    ComputeStageStartTimes(order, groups, itemStart, start),
		StageDuration: durations,
		StartTime:     start.String(),
		EndTime:       start.Add(total).String(),
		TotalDuration: total,
		Budget:        budget,
		Status:        budget.Classify(total),
		RemainingSecs: budget.Remaining(total),
	}
}

// OrderedItems flattens the schedule's groups following StageOrder.
func (s Schedule) OrderedItems() []domain.PlanItem {
	var out []domain.PlanItem
	for _, id := range s.StageOrder {
		out = append(out, s.Groups[id]...)
	}
	return out
}
