package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claude/liftrank/internal/models"
)

const progressColumns = `workout_id, personal_record, percentile_ranking, strength_level, featured, last_updated`

// upsertProgressSQL only replaces an existing entry with a higher record.
const upsertProgressSQL = `INSERT INTO user_progress (workout_id, personal_record, percentile_ranking, strength_level, last_updated)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (workout_id) DO UPDATE
	SET personal_record = excluded.personal_record,
	    percentile_ranking = excluded.percentile_ranking,
	    strength_level = excluded.strength_level,
	    last_updated = excluded.last_updated
	WHERE user_progress.personal_record < excluded.personal_record`

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (models.UserProgress, error) {
	var (
		p       models.UserProgress
		updated string
	)
	if err := row.Scan(&p.WorkoutID, &p.PersonalRecord, &p.PercentileRanking, &p.StrengthLevel, &p.Featured, &updated); err != nil {
		return p, err
	}
	t, err := parseTime(updated)
	if err != nil {
		return p, fmt.Errorf("parsing last_updated of %s: %w", p.WorkoutID, err)
	}
	p.LastUpdated = t
	return p, nil
}

func (s *Store) GetTopLiftByID(ctx context.Context, id string) (*models.UserProgress, error) {
	p, err := scanProgress(s.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM user_progress WHERE workout_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying progress for %s: %w", id, err)
	}
	return &p, nil
}

func (s *Store) GetAllFeaturedLifts(ctx context.Context) ([]models.UserProgress, error) {
	return s.ListProgress(ctx, true)
}

// ListProgress returns stored progress, strongest first.
func (s *Store) ListProgress(ctx context.Context, featuredOnly bool) ([]models.UserProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+progressColumns+` FROM user_progress
		 WHERE featured = 1 OR NOT ?
		 ORDER BY percentile_ranking DESC, workout_id ASC`, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	defer rows.Close()

	result := []models.UserProgress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpsertProgress stores progress entries that beat the stored records.
func (s *Store) UpsertProgress(ctx context.Context, updates []models.UserProgress) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertProgress(ctx, tx, updates); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertProgress(ctx context.Context, tx *sql.Tx, updates []models.UserProgress) error {
	for _, p := range updates {
		_, err := tx.ExecContext(ctx, upsertProgressSQL,
			p.WorkoutID, p.PersonalRecord, p.PercentileRanking, string(p.StrengthLevel), formatTime(p.LastUpdated))
		if err != nil {
			return fmt.Errorf("upserting progress for %s: %w", p.WorkoutID, err)
		}
	}
	return nil
}

// SetFeatured marks or unmarks a lift as featured.
func (s *Store) SetFeatured(ctx context.Context, workoutID string, featured bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_progress SET featured = ? WHERE workout_id = ?`, featured, workoutID)
	if err != nil {
		return fmt.Errorf("updating featured flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
