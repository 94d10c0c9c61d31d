package planner

import (
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/google/uuid"
)

// NewPlanItem snapshots a catalog stage and exercise into a fresh PlanItem.
// Order is left at zero; the insert operation assigns it.
func NewPlanItem(stage *domain.Stage, ex *domain.Exercise) domain.PlanItem {
	return domain.PlanItem{
		ID:           uuid.New().String(),
		StageID:      stage.ID,
		StageName:    stage.Name,
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Duration:     ex.Duration,
	}
}

// Renormalize returns a copy of items with Order set to index+1.
func Renormalize(items []domain.PlanItem) []domain.PlanItem {
	out := make([]domain.PlanItem, len(items))
	for i, it := range items {
		it.Order = i + 1
		out[i] = it
	}
	return out
}

// InsertIntoStage places item right after the last item of stageID, or at
// the end when the stage has no items yet.
func InsertIntoStage(items []domain.PlanItem, stageID string, item domain.PlanItem) []domain.PlanItem {
	item.StageID = stageID
	at := len(items)
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].StageID == stageID {
			at = i + 1
			break
		}
	}

	out := make([]domain.PlanItem, 0, len(items)+1)
	out = append(out, items[:at]...)
	out = append(out, item)
	out = append(out, items[at:]...)
	return Renormalize(out)
}

// Remove drops the item with itemID. Unknown IDs are a no-op.
func Remove(items []domain.PlanItem, itemID string) []domain.PlanItem {
	out := make([]domain.PlanItem, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	return Renormalize(out)
}

// RemoveStageItems drops every item belonging to stageID.
func RemoveStageItems(items []domain.PlanItem, stageID string) []domain.PlanItem {
	out := make([]domain.PlanItem, 0, len(items))
	for _, it := range items {
		if it.StageID != stageID {
			out = append(out, it)
		}
	}
	return Renormalize(out)
}

// MoveItemWithinStage swaps the item with its neighbour in dir, but only
// when that neighbour belongs to the same stage.
func MoveItemWithinStage(items []domain.PlanItem, itemID string, dir domain.Direction) []domain.PlanItem {
	out := Renormalize(items)
	i := indexOfItem(out, itemID)
	if i < 0 {
		return out
	}
	j := i - 1
	if dir == domain.DirectionDown {
		j = i + 1
	}
	if j < 0 || j >= len(out) || out[j].StageID != out[i].StageID {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return Renormalize(out)
}

// MoveStage swaps the block of stageID with the adjacent block of a
// different stage in dir. Each block keeps its internal order. A stage with
// no items, or already at the edge, is left where it is.
func MoveStage(items []domain.PlanItem, stageID string, dir domain.Direction) []domain.PlanItem {
	start, end := blockBounds(items, stageID)
	if start < 0 {
		return Renormalize(items)
	}

	var first, second []domain.PlanItem
	var lo, hi int
	switch dir {
	case domain.DirectionUp:
		if start == 0 {
			return Renormalize(items)
		}
		lo = blockStart(items, start-1)
		hi = end
		first, second = items[start:end], items[lo:start]
	case domain.DirectionDown:
		if end == len(items) {
			return Renormalize(items)
		}
		lo = start
		hi = blockEnd(items, end)
		first, second = items[end:hi], items[start:end]
	default:
		return Renormalize(items)
	}

	out := make([]domain.PlanItem, 0, len(items))
	out = append(out, items[:lo]...)
	out = append(out, first...)
	out = append(out, second...)
	out = append(out, items[hi:]...)
	return Renormalize(out)
}

// MoveInStageOrder swaps stageID with its neighbour in the stage order list.
// This is how stages without items are reordered.
func MoveInStageOrder(order []string, stageID string, dir domain.Direction) []string {
	out := append([]string(nil), order...)
	i := -1
	for k, id := range out {
		if id == stageID {
			i = k
			break
		}
	}
	if i < 0 {
		return out
	}
	j := i - 1
	if dir == domain.DirectionDown {
		j = i + 1
	}
	if j < 0 || j >= len(out) {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return out
}

// DeclareStage adds stageID to the stage order at pos. Already-declared
// stages are returned unchanged.
func DeclareStage(order []string, stageID string, pos domain.StagePosition) []string {
	for _, id := range order {
		if id == stageID {
			return append([]string(nil), order...)
		}
	}
	if pos == domain.PositionTop {
		return append([]string{stageID}, order...)
	}
	return append(append([]string(nil), order...), stageID)
}

// UndeclareStage removes stageID from the stage order.
func UndeclareStage(order []string, stageID string) []string {
	out := make([]string, 0, len(order))
	for _, id := range order {
		if id != stageID {
			out = append(out, id)
		}
	}
	return out
}

// Align regroups items so stage blocks follow order. Stages missing from
// order keep their first-encounter position after the declared ones.
func Align(items []domain.PlanItem, order []string) []domain.PlanItem {
	groups := GroupByStage(items)
	out := make([]domain.PlanItem, 0, len(items))
	for _, id := range StageDisplayOrder(order, items) {
		out = append(out, groups[id]...)
	}
	return Renormalize(out)
}

func indexOfItem(items []domain.PlanItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// blockBounds returns the half-open range [start, end) of stageID's block, or -1, -1.
func blockBounds(items []domain.PlanItem, stageID string) (int, int) {
	for i, it := range items {
		if it.StageID == stageID {
			return i, blockEnd(items, i)
		}
	}
	return -1, -1
}

// blockStart walks back from i to the first index of the same stage.
func blockStart(items []domain.PlanItem, i int) int {
	id := items[i].StageID
	for i > 0 && items[i-1].StageID == id {
		i--
	}
	return i
}

// blockEnd walks forward from i and returns one past the last index of the same stage.
func blockEnd(items []domain.PlanItem, i int) int {
	id := items[i].StageID
	for i < len(items) && items[i].StageID == id {
		i++
	}
	return i
}
