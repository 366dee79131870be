package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftrank/internal/models"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// GetWorkoutTemplate returns a catalog template, or nil if it does not exist.
func (db *DB) GetWorkoutTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	var (
		t         models.WorkoutTemplate
		exercises []byte
	)
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, primary_muscles, exercises FROM workout_templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.PrimaryMuscles, &exercises)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout template %s: %w", id, err)
	}
	if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises of %s: %w", id, err)
	}
	return &t, nil
}

// ListWorkoutTemplates returns every catalog template ordered by name.
func (db *DB) ListWorkoutTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, primary_muscles, exercises FROM workout_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying workout templates: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutTemplate{}
	for rows.Next() {
		var (
			t         models.WorkoutTemplate
			exercises []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.PrimaryMuscles, &exercises); err != nil {
			return nil, fmt.Errorf("scanning workout template: %w", err)
		}
		if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises of %s: %w", t.ID, err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// UpsertWorkoutTemplate creates or replaces a catalog template.
func (db *DB) UpsertWorkoutTemplate(ctx context.Context, t models.WorkoutTemplate) error {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}
	muscles := t.PrimaryMuscles
	if muscles == nil {
		muscles = []string{}
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_templates (id, name, primary_muscles, exercises)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, primary_muscles = EXCLUDED.primary_muscles, exercises = EXCLUDED.exercises`,
		t.ID, t.Name, muscles, exercises)
	if err != nil {
		return fmt.Errorf("upserting workout template %s: %w", t.ID, err)
	}
	return nil
}
