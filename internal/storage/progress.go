package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftrank/internal/models"
)

const progressColumns = `workout_id, personal_record, percentile_ranking, strength_level, featured, last_updated`

// upsertProgressSQL only replaces an existing entry with a higher record.
const upsertProgressSQL = `INSERT INTO user_progress (user_id, workout_id, personal_record, percentile_ranking, strength_level, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, workout_id) DO UPDATE
	SET personal_record = EXCLUDED.personal_record,
	    percentile_ranking = EXCLUDED.percentile_ranking,
	    strength_level = EXCLUDED.strength_level,
	    last_updated = EXCLUDED.last_updated
	WHERE user_progress.personal_record < EXCLUDED.personal_record`

// GetTopLift returns the stored progress for one exercise, or nil if none exists.
func (db *DB) GetTopLift(ctx context.Context, userID int, workoutID string) (*models.UserProgress, error) {
	var p models.UserProgress
	err := db.Pool.QueryRow(ctx,
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 AND workout_id = $2`,
		userID, workoutID,
	).Scan(&p.WorkoutID, &p.PersonalRecord, &p.PercentileRanking, &p.StrengthLevel, &p.Featured, &p.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying progress for %s: %w", workoutID, err)
	}
	return &p, nil
}

// QueryProgress returns all progress entries of a user, strongest first.
// With featuredOnly set only featured lifts are returned.
func (db *DB) QueryProgress(ctx context.Context, userID int, featuredOnly bool) ([]models.UserProgress, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+progressColumns+` FROM user_progress
		 WHERE user_id = $1 AND (featured OR NOT $2)
		 ORDER BY percentile_ranking DESC, workout_id ASC`,
		userID, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	defer rows.Close()

	result := []models.UserProgress{}
	for rows.Next() {
		var p models.UserProgress
		if err := rows.Scan(&p.WorkoutID, &p.PersonalRecord, &p.PercentileRanking, &p.StrengthLevel, &p.Featured, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpsertProgress stores updated personal records. An existing entry is only
// replaced by a higher record; its featured flag is kept. Returns the number
// of rows written.
func (db *DB) UpsertProgress(ctx context.Context, userID int, updates []models.UserProgress) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range updates {
		batch.Queue(upsertProgressSQL,
			userID, p.WorkoutID, p.PersonalRecord, p.PercentileRanking, string(p.StrengthLevel), p.LastUpdated)
	}

	results := db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	var written int64
	for range updates {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("upserting progress: %w", err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

// SetFeatured marks or unmarks a lift as featured.
func (db *DB) SetFeatured(ctx context.Context, userID int, workoutID string, featured bool) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE user_progress SET featured = $3 WHERE user_id = $1 AND workout_id = $2`,
		userID, workoutID, featured)
	if err != nil {
		return fmt.Errorf("updating featured flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
