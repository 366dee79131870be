package session

import (
	"errors"
	"fmt"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/standards"
)

var (
	ErrAlreadyStarted     = errors.New("session already started")
	ErrNotInProgress      = errors.New("session not in progress")
	ErrAlreadyFinished    = errors.New("session already finished")
	ErrEmptyWorkout       = errors.New("workout has no exercises")
	ErrInvalidSet         = errors.New("weight and reps must be positive")
	ErrEditing            = errors.New("a set is being edited")
	ErrSetIndex           = errors.New("set index out of range")
	ErrExerciseIndex      = errors.New("exercise index out of range")
	ErrExerciseIncomplete = errors.New("current exercise not completed")
	ErrLastExercise       = errors.New("no exercise after the current one")
	ErrWorkoutNotFound    = errors.New("workout not found")
)

// Apply returns the state that results from applying ev to s. The input is
// never modified; on error the returned state is s unchanged.
func Apply(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case Initialized:
		return initialize(s, e)
	case CancelRequested:
		return cancel(s)
	}

	if s.Status == Finished {
		return s, ErrAlreadyFinished
	}
	if s.Status != InProgress {
		return s, ErrNotInProgress
	}

	switch e := ev.(type) {
	case SetCompleted:
		if e.Weight <= 0 || e.Reps <= 0 {
			return s, ErrInvalidSet
		}
		return appendSet(s, e.Weight, e.Reps, true)
	case SetSkipped:
		if e.Weight < 0 || e.Reps < 0 {
			return s, ErrInvalidSet
		}
		return appendSet(s, e.Weight, e.Reps, false)
	case EditStarted:
		ex, _ := s.Current()
		if e.Index < 0 || e.Index >= len(ex.CompletedSets) {
			return s, ErrSetIndex
		}
		next := s.Clone()
		idx := e.Index
		next.EditingSetIndex = &idx
		return next, nil
	case SetUpdated:
		return updateSet(s, e)
	case EditCancelled:
		next := s.Clone()
		next.EditingSetIndex = nil
		return next, nil
	case ExerciseSelected:
		if e.Index < 0 || e.Index >= len(s.Exercises) {
			return s, ErrExerciseIndex
		}
		return selectExercise(s, e.Index), nil
	case NextExercise:
		ex, _ := s.Current()
		if !ex.IsCompleted {
			return s, ErrExerciseIncomplete
		}
		if s.CurrentExerciseIndex+1 >= len(s.Exercises) {
			return s, ErrLastExercise
		}
		return selectExercise(s, s.CurrentExerciseIndex+1), nil
	case RecommendationLoaded:
		if e.ExerciseIndex < 0 || e.ExerciseIndex >= len(s.Exercises) {
			return s, ErrExerciseIndex
		}
		next := s.Clone()
		next.Exercises[e.ExerciseIndex].SuggestedWeight = e.Weight
		return next, nil
	case FinishRequested:
		if s.Editing() {
			return s, ErrEditing
		}
		ex, _ := s.Current()
		if !ex.IsCompleted {
			return s, ErrExerciseIncomplete
		}
		next := s.Clone()
		next.Status = Finished
		return next, nil
	}
	return s, fmt.Errorf("unknown event %T", ev)
}

func initialize(s State, e Initialized) (State, error) {
	if s.Status != NotStarted {
		return s, ErrAlreadyStarted
	}
	if len(e.Template.Exercises) == 0 {
		return s, ErrEmptyWorkout
	}
	unit := e.Unit
	if unit == "" {
		unit = models.Pounds
	}

	next := State{
		Status:         InProgress,
		WorkoutID:      e.Template.ID,
		Title:          e.Template.Name,
		PrimaryMuscles: append([]string(nil), e.Template.PrimaryMuscles...),
		StartTime:      e.StartTime,
		Exercises:      make([]Exercise, 0, len(e.Template.Exercises)),
		Unit:           unit,
	}
	for _, t := range e.Template.Exercises {
		id := t.ID
		if id == "" {
			id = standards.Normalize(t.Name)
		}
		sets := t.Sets
		if sets < 1 {
			sets = 1
		}
		next.Exercises = append(next.Exercises, Exercise{
			ID:            id,
			Name:          t.Name,
			TargetSets:    sets,
			TargetReps:    t.Reps,
			CompletedSets: []SetCompletion{},
		})
	}
	return next, nil
}

func cancel(s State) (State, error) {
	switch s.Status {
	case Finished:
		return s, ErrAlreadyFinished
	case Cancelled:
		return s, nil
	}
	next := s.Clone()
	next.Status = Cancelled
	next.EditingSetIndex = nil
	return next, nil
}

func appendSet(s State, weight float64, reps int, completed bool) (State, error) {
	if s.Editing() {
		return s, ErrEditing
	}
	if _, ok := s.Current(); !ok {
		return s, ErrExerciseIndex
	}
	next := s.Clone()
	ex := &next.Exercises[next.CurrentExerciseIndex]
	ex.CompletedSets = append(ex.CompletedSets, SetCompletion{
		SetNumber: len(ex.CompletedSets) + 1,
		Weight:    weight,
		Unit:      next.Unit,
		Reps:      reps,
		Completed: completed,
	})
	ex.IsCompleted = len(ex.CompletedSets) >= ex.TargetSets
	return next, nil
}

func updateSet(s State, e SetUpdated) (State, error) {
	ex, _ := s.Current()
	if e.Index < 0 || e.Index >= len(ex.CompletedSets) {
		return s, ErrSetIndex
	}
	if e.Weight <= 0 || e.Reps <= 0 {
		return s, ErrInvalidSet
	}
	next := s.Clone()
	sets := next.Exercises[next.CurrentExerciseIndex].CompletedSets
	sets[e.Index].Weight = e.Weight
	sets[e.Index].Reps = e.Reps
	sets[e.Index].Completed = true
	next.EditingSetIndex = nil
	return next, nil
}

func selectExercise(s State, index int) State {
	next := s.Clone()
	next.CurrentExerciseIndex = index
	next.EditingSetIndex = nil
	return next
}
