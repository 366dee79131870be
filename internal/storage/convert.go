package storage

import (
	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
)

// SessionRows converts a finished session into a workouts row and its
// workout_sets rows. Exercises without sets produce no set rows.
func SessionRows(id uuid.UUID, userID int, res session.Result) (models.WorkoutRow, []models.WorkoutSetRow) {
	s := res.State
	row := models.WorkoutRow{
		ID:              id,
		UserID:          userID,
		TemplateID:      s.WorkoutID,
		Title:           s.Title,
		StartTime:       s.StartTime,
		EndTime:         s.StartTime.Add(res.Stats.Duration),
		DurationSec:     res.Stats.Duration.Seconds(),
		TotalSets:       res.Stats.TotalSets,
		TotalVolume:     res.Stats.TotalVolume,
		Unit:            s.Unit,
		ProgressUpdates: res.Stats.ProgressUpdates,
	}

	var sets []models.WorkoutSetRow
	for i, ex := range s.Exercises {
		for _, set := range ex.CompletedSets {
			sets = append(sets, models.WorkoutSetRow{
				WorkoutID:      id,
				UserID:         userID,
				ExerciseNumber: i + 1,
				ExerciseID:     ex.ID,
				ExerciseName:   ex.Name,
				TargetSets:     ex.TargetSets,
				TargetReps:     ex.TargetReps,
				SetNumber:      set.SetNumber,
				Weight:         set.Weight,
				Unit:           set.Unit,
				Reps:           set.Reps,
				Completed:      set.Completed,
			})
		}
	}
	return row, sets
}
