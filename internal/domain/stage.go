package domain

import "time"

// Stage is a named phase of a lesson in the catalog.
type Stage struct {
	ID          string
	Name        string
	Description string
	Exercises   []*Exercise
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FindExercise returns the stage's exercise with the given ID, or nil.
func (s *Stage) FindExercise(id string) *Exercise {
	for _, e := range s.Exercises {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Exercise is a catalog activity with a fixed duration in seconds.
type Exercise struct {
	ID          string
	StageID     string
	Name        string
	Duration    int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
