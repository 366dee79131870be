package session

import (
	"time"

	"github.com/claude/liftrank/internal/models"
)

// Event is an input to Apply.
type Event interface {
	event()
}

// Initialized starts a session from a catalog template.
type Initialized struct {
	Template  models.WorkoutTemplate
	StartTime time.Time
	Unit      models.Unit
}

// SetCompleted records a completed set on the current exercise.
type SetCompleted struct {
	Weight float64
	Reps   int
}

// SetSkipped records a skipped set on the current exercise.
type SetSkipped struct {
	Weight float64
	Reps   int
}

// EditStarted marks a set of the current exercise as being edited.
type EditStarted struct {
	Index int
}

// SetUpdated replaces a set of the current exercise in place.
type SetUpdated struct {
	Index  int
	Weight float64
	Reps   int
}

// EditCancelled leaves edit mode without changes.
type EditCancelled struct{}

// ExerciseSelected jumps to the exercise at Index.
type ExerciseSelected struct {
	Index int
}

// NextExercise advances past a completed exercise.
type NextExercise struct{}

// RecommendationLoaded stores a suggested weight for an exercise.
type RecommendationLoaded struct {
	ExerciseIndex int
	Weight        float64
}

// FinishRequested ends the session.
type FinishRequested struct{}

// CancelRequested discards the session.
type CancelRequested struct{}

func (Initialized) event()          {}
func (SetCompleted) event()         {}
func (SetSkipped) event()           {}
func (EditStarted) event()          {}
func (SetUpdated) event()           {}
func (EditCancelled) event()        {}
func (ExerciseSelected) event()     {}
func (NextExercise) event()         {}
func (RecommendationLoaded) event() {}
func (FinishRequested) event()      {}
func (CancelRequested) event()      {}
