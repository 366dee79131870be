package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
	"github.com/claude/liftrank/internal/storage"
)

const workoutColumns = `id, template_id, title, start_time, end_time, duration_sec,
	total_sets, total_volume, unit, progress_updates`

// SaveSession stores a finished session with its sets and the progress
// updates in one transaction, clears the active session and returns the
// new workout ID.
func (s *Store) SaveSession(ctx context.Context, res session.Result, updates []models.UserProgress) (uuid.UUID, error) {
	id := uuid.New()
	if err := s.saveWorkout(ctx, id, res, updates, true); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// SaveImported stores an imported workout under id. The active session is
// left alone.
func (s *Store) SaveImported(ctx context.Context, id uuid.UUID, res session.Result, updates []models.UserProgress) error {
	return s.saveWorkout(ctx, id, res, updates, false)
}

// WorkoutExists reports whether a workout with id is stored.
func (s *Store) WorkoutExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts WHERE id = ?`, id.String()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking workout: %w", err)
	}
	return n > 0, nil
}

// PersonalRecord returns the stored 1RM for exercise in pounds, 0 if none.
func (s *Store) PersonalRecord(ctx context.Context, exercise string) (float64, error) {
	p, err := s.GetTopLiftByID(ctx, exercise)
	if err != nil || p == nil {
		return 0, err
	}
	return p.PersonalRecord, nil
}

func (s *Store) saveWorkout(ctx context.Context, id uuid.UUID, res session.Result, updates []models.UserProgress, clearActive bool) error {
	if res.State.Status != session.Finished {
		return fmt.Errorf("saving session: status is %s", res.State.Status)
	}
	row, sets := storage.SessionRows(id, LocalUserID, res)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workouts (`+workoutColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		row.ID.String(), row.TemplateID, row.Title, formatTime(row.StartTime), formatTime(row.EndTime),
		row.DurationSec, row.TotalSets, row.TotalVolume, string(row.Unit), row.ProgressUpdates)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	for _, set := range sets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workout_sets (workout_id, exercise_number, exercise_id, exercise_name,
			 target_sets, target_reps, set_number, weight, unit, reps, completed)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			row.ID.String(), set.ExerciseNumber, set.ExerciseID, set.ExerciseName,
			set.TargetSets, set.TargetReps, set.SetNumber, set.Weight, string(set.Unit), set.Reps, set.Completed)
		if err != nil {
			return fmt.Errorf("inserting set %d of %s: %w", set.SetNumber, set.ExerciseID, err)
		}
	}
	if err := upsertProgress(ctx, tx, updates); err != nil {
		return err
	}
	if clearActive {
		if _, err := tx.ExecContext(ctx, `DELETE FROM active_session`); err != nil {
			return fmt.Errorf("clearing active session: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListWorkouts returns the most recent workouts, newest first.
func (s *Store) ListWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts ORDER BY start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutRow{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout returns one workout with its sets.
func (s *Store) GetWorkout(ctx context.Context, id uuid.UUID) (*storage.WorkoutDetail, error) {
	w, err := scanWorkout(s.db.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT exercise_number, exercise_id, exercise_name, target_sets, target_reps,
		        set_number, weight, unit, reps, completed
		 FROM workout_sets WHERE workout_id = ?
		 ORDER BY exercise_number, set_number`, id.String())
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	detail := &storage.WorkoutDetail{WorkoutRow: w, Sets: []models.WorkoutSetRow{}}
	for rows.Next() {
		set := models.WorkoutSetRow{WorkoutID: id, UserID: LocalUserID}
		if err := rows.Scan(&set.ExerciseNumber, &set.ExerciseID, &set.ExerciseName, &set.TargetSets, &set.TargetReps,
			&set.SetNumber, &set.Weight, &set.Unit, &set.Reps, &set.Completed); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		detail.Sets = append(detail.Sets, set)
	}
	return detail, rows.Err()
}

func scanWorkout(row scanner) (models.WorkoutRow, error) {
	var (
		w          models.WorkoutRow
		id         string
		start, end string
	)
	if err := row.Scan(&id, &w.TemplateID, &w.Title, &start, &end, &w.DurationSec,
		&w.TotalSets, &w.TotalVolume, &w.Unit, &w.ProgressUpdates); err != nil {
		return w, err
	}
	var err error
	if w.ID, err = uuid.Parse(id); err != nil {
		return w, fmt.Errorf("parsing workout id: %w", err)
	}
	if w.StartTime, err = parseTime(start); err != nil {
		return w, fmt.Errorf("parsing start_time: %w", err)
	}
	if w.EndTime, err = parseTime(end); err != nil {
		return w, fmt.Errorf("parsing end_time: %w", err)
	}
	w.UserID = LocalUserID
	return w, nil
}
