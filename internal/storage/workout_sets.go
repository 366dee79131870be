package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/liftrank/internal/models"
)

const setColumns = 12

// insertWorkoutSets batch-inserts the sets of a finished session. Returns count inserted.
func insertWorkoutSets(ctx context.Context, tx pgx.Tx, rows []models.WorkoutSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (workout_id, user_id, exercise_number, exercise_id, exercise_name,
		target_sets, target_reps, set_number, weight, unit, reps, completed) VALUES `
	args := make([]any, 0, len(rows)*setColumns)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * setColumns
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		args = append(args, r.WorkoutID, r.UserID, r.ExerciseNumber, r.ExerciseID, r.ExerciseName,
			r.TargetSets, r.TargetReps, r.SetNumber, r.Weight, string(r.Unit), r.Reps, r.Completed)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWorkoutSets retrieves the sets of one workout in exercise and set order.
func (db *DB) QueryWorkoutSets(ctx context.Context, workoutID uuid.UUID, userID int) ([]models.WorkoutSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT workout_id, user_id, exercise_number, exercise_id, exercise_name,
		 target_sets, target_reps, set_number, weight, unit, reps, completed
		 FROM workout_sets
		 WHERE workout_id = $1 AND user_id = $2
		 ORDER BY exercise_number ASC, set_number ASC`,
		workoutID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSetRow
	for rows.Next() {
		var (
			r    models.WorkoutSetRow
			unit string
		)
		if err := rows.Scan(&r.WorkoutID, &r.UserID, &r.ExerciseNumber, &r.ExerciseID, &r.ExerciseName,
			&r.TargetSets, &r.TargetReps, &r.SetNumber, &r.Weight, &unit, &r.Reps, &r.Completed); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		r.Unit = models.Unit(unit)
		result = append(result, r)
	}
	return result, rows.Err()
}
