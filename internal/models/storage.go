package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a finished session as stored in the workouts table.
type WorkoutRow struct {
	ID              uuid.UUID `json:"id"`
	UserID          int       `json:"user_id"`
	TemplateID      string    `json:"template_id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSec     float64   `json:"duration_sec"`
	TotalSets       int       `json:"total_sets"`
	TotalVolume     float64   `json:"total_volume"`
	Unit            Unit      `json:"unit"`
	ProgressUpdates int       `json:"progress_updates"`
}

// WorkoutSetRow is a row for the workout_sets table.
type WorkoutSetRow struct {
	WorkoutID      uuid.UUID `json:"workout_id"`
	UserID         int       `json:"user_id"`
	ExerciseNumber int       `json:"exercise_number"`
	ExerciseID     string    `json:"exercise_id"`
	ExerciseName   string    `json:"exercise_name"`
	TargetSets     int       `json:"target_sets"`
	TargetReps     string    `json:"target_reps"`
	SetNumber      int       `json:"set_number"`
	Weight         float64   `json:"weight"`
	Unit           Unit      `json:"unit"`
	Reps           int       `json:"reps"`
	Completed      bool      `json:"completed"`
}
