package domain

import "fmt"

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (want up or down)", s)
}

type BudgetStatus string

const (
	BudgetOK   BudgetStatus = "ok"
	BudgetNear BudgetStatus = "near_limit"
	BudgetOver BudgetStatus = "over"
)

// StagePosition says where a newly declared stage goes in the stage order.
type StagePosition string

const (
	PositionTop    StagePosition = "top"
	PositionBottom StagePosition = "bottom"
)

// ParseStagePosition accepts "top" or "bottom".
func ParseStagePosition(s string) (StagePosition, error) {
	switch StagePosition(s) {
	case PositionTop, PositionBottom:
		return StagePosition(s), nil
	}
	return "", fmt.Errorf("invalid position %q (want top or bottom)", s)
}
