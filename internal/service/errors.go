package service

import "errors"

var (
	// ErrOverBudget is returned when adding an exercise would push a plan past
	// its ceiling and the caller did not force it.
	ErrOverBudget = errors.New("not enough time left in the lesson for this exercise")

	ErrInvalidTime        = errors.New("start time must be HH:MM with hour 0-23 and minute 00-59")
	ErrTitleRequired      = errors.New("plan title is required")
	ErrTitleTaken         = errors.New("a plan with this title already exists")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidDuration    = errors.New("duration must be a positive number of seconds")
	ErrExerciseNotInStage = errors.New("exercise does not belong to this stage")
)
