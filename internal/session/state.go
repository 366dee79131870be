// Package session implements the guided workout session: an explicit State,
// a pure reducer applying Events to it, and a Controller that drives the
// reducer with the catalog, progress store, recommendation engine and rest
// timer.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/liftrank/internal/models"
)

// Status is the lifecycle of a session.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Finished
	Cancelled
)

var statusNames = [...]string{"not_started", "in_progress", "finished", "cancelled"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether no further events are accepted.
func (s Status) Terminal() bool {
	return s == Finished || s == Cancelled
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown session status %q", name)
}

// ExerciseStatus is derived from an exercise's recorded sets.
type ExerciseStatus string

const (
	ExercisePending    ExerciseStatus = "pending"
	ExerciseInProgress ExerciseStatus = "in_progress"
	ExerciseCompleted  ExerciseStatus = "completed"
)

// SetCompletion is one recorded set. Completed is false for a skipped set,
// which is kept for history but excluded from volume and records.
type SetCompletion struct {
	SetNumber int         `json:"set_number"`
	Weight    float64     `json:"weight"`
	Unit      models.Unit `json:"unit"`
	Reps      int         `json:"reps"`
	Completed bool        `json:"completed"`
}

// Volume is weight × reps for completed sets and 0 for skipped ones.
func (s SetCompletion) Volume() float64 {
	if !s.Completed {
		return 0
	}
	return s.Weight * float64(s.Reps)
}

// Exercise tracks progress through one planned exercise.
type Exercise struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TargetSets      int             `json:"target_sets"`
	TargetReps      string          `json:"target_reps"`
	CompletedSets   []SetCompletion `json:"completed_sets"`
	IsCompleted     bool            `json:"is_completed"`
	SuggestedWeight float64         `json:"suggested_weight"`
}

// Status derives the exercise status from its sets.
func (e Exercise) Status() ExerciseStatus {
	switch {
	case e.IsCompleted:
		return ExerciseCompleted
	case len(e.CompletedSets) > 0:
		return ExerciseInProgress
	default:
		return ExercisePending
	}
}

// State is a full snapshot of a session.
type State struct {
	Status               Status      `json:"status"`
	WorkoutID            string      `json:"workout_id"`
	Title                string      `json:"title"`
	PrimaryMuscles       []string    `json:"primary_muscles,omitempty"`
	StartTime            time.Time   `json:"start_time"`
	Exercises            []Exercise  `json:"exercises"`
	CurrentExerciseIndex int         `json:"current_exercise_index"`
	EditingSetIndex      *int        `json:"editing_set_index,omitempty"`
	Unit                 models.Unit `json:"unit"`
}

// Current returns the exercise at CurrentExerciseIndex.
func (s State) Current() (Exercise, bool) {
	if s.CurrentExerciseIndex < 0 || s.CurrentExerciseIndex >= len(s.Exercises) {
		return Exercise{}, false
	}
	return s.Exercises[s.CurrentExerciseIndex], true
}

// Editing reports whether a set edit is in progress.
func (s State) Editing() bool {
	return s.EditingSetIndex != nil
}

// Clone returns a deep copy sharing no slices or pointers with s.
func (s State) Clone() State {
	c := s
	if s.PrimaryMuscles != nil {
		c.PrimaryMuscles = append([]string(nil), s.PrimaryMuscles...)
	}
	if s.Exercises != nil {
		c.Exercises = make([]Exercise, len(s.Exercises))
		for i, ex := range s.Exercises {
			if ex.CompletedSets != nil {
				sets := make([]SetCompletion, len(ex.CompletedSets))
				copy(sets, ex.CompletedSets)
				ex.CompletedSets = sets
			}
			c.Exercises[i] = ex
		}
	}
	if s.EditingSetIndex != nil {
		idx := *s.EditingSetIndex
		c.EditingSetIndex = &idx
	}
	return c
}
