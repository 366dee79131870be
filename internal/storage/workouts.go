package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/liftrank/internal/models"
)

const workoutColumns = `id, user_id, template_id, title, start_time, end_time, duration_sec,
	total_sets, total_volume, unit, progress_updates`

// SaveWorkout stores a finished session with its sets and the updated
// progress in one transaction.
func (db *DB) SaveWorkout(ctx context.Context, row models.WorkoutRow, sets []models.WorkoutSetRow, updates []models.UserProgress) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO workouts (`+workoutColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			row.ID, row.UserID, row.TemplateID, row.Title, row.StartTime, row.EndTime, row.DurationSec,
			row.TotalSets, row.TotalVolume, string(row.Unit), row.ProgressUpdates)
		if err != nil {
			return fmt.Errorf("inserting workout: %w", err)
		}
		if _, err := insertWorkoutSets(ctx, tx, sets); err != nil {
			return err
		}
		for _, p := range updates {
			_, err := tx.Exec(ctx, upsertProgressSQL,
				row.UserID, p.WorkoutID, p.PersonalRecord, p.PercentileRanking, string(p.StrengthLevel), p.LastUpdated)
			if err != nil {
				return fmt.Errorf("upserting progress for %s: %w", p.WorkoutID, err)
			}
		}
		return nil
	})
}

// WorkoutDetail is a workout with its sets.
type WorkoutDetail struct {
	models.WorkoutRow
	Sets []models.WorkoutSetRow `json:"sets"`
}

// QueryWorkouts retrieves workouts in a time range.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE start_time >= $1 AND start_time < $2 AND user_id = $3
		 ORDER BY start_time DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkoutRows(rows)
}

// GetWorkout retrieves a single workout by ID with its sets.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID)

	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	sets, err := db.QueryWorkoutSets(ctx, workoutID, userID)
	if err != nil {
		return nil, err
	}
	return &WorkoutDetail{WorkoutRow: w, Sets: sets}, nil
}

func scanWorkout(row pgx.Row) (models.WorkoutRow, error) {
	var (
		w    models.WorkoutRow
		unit string
	)
	err := row.Scan(&w.ID, &w.UserID, &w.TemplateID, &w.Title, &w.StartTime, &w.EndTime, &w.DurationSec,
		&w.TotalSets, &w.TotalVolume, &unit, &w.ProgressUpdates)
	w.Unit = models.Unit(unit)
	return w, err
}

func scanWorkoutRows(rows pgx.Rows) ([]models.WorkoutRow, error) {
	var result []models.WorkoutRow
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
