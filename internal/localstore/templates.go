package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claude/liftrank/internal/models"
)

// templateFile is the YAML layout accepted by ImportTemplates.
type templateFile struct {
	Workouts []models.WorkoutTemplate `yaml:"workouts"`
}

func (s *Store) GetWorkoutByID(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	t, err := scanTemplate(s.db.QueryRowContext(ctx,
		`SELECT id, name, primary_muscles, exercises FROM workout_templates WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout template %s: %w", id, err)
	}
	return &t, nil
}

// ListTemplates returns every stored template ordered by name.
func (s *Store) ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, primary_muscles, exercises FROM workout_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying workout templates: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// ImportTemplates reads a YAML file with a top-level "workouts" list and
// stores every template, replacing templates with the same ID.
func (s *Store) ImportTemplates(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading workout file: %w", err)
	}
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parsing workout file: %w", err)
	}
	for _, t := range f.Workouts {
		if err := validateTemplate(t); err != nil {
			return 0, err
		}
	}
	for i, t := range f.Workouts {
		if err := s.insertTemplate(ctx, t, true); err != nil {
			return i, err
		}
	}
	return len(f.Workouts), nil
}

func validateTemplate(t models.WorkoutTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("workout %q: id is required", t.Name)
	}
	if len(t.Exercises) == 0 {
		return fmt.Errorf("workout %s: at least one exercise is required", t.ID)
	}
	for _, ex := range t.Exercises {
		if ex.Name == "" && ex.ID == "" {
			return fmt.Errorf("workout %s: exercise needs an id or a name", t.ID)
		}
	}
	return nil
}

func (s *Store) insertTemplate(ctx context.Context, t models.WorkoutTemplate, replace bool) error {
	muscles, err := json.Marshal(t.PrimaryMuscles)
	if err != nil {
		return fmt.Errorf("encoding muscles of %s: %w", t.ID, err)
	}
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises of %s: %w", t.ID, err)
	}
	verb := "INSERT OR IGNORE"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	_, err = s.db.ExecContext(ctx,
		verb+` INTO workout_templates (id, name, primary_muscles, exercises) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, string(muscles), string(exercises))
	if err != nil {
		return fmt.Errorf("storing workout template %s: %w", t.ID, err)
	}
	return nil
}

func scanTemplate(row scanner) (models.WorkoutTemplate, error) {
	var (
		t                  models.WorkoutTemplate
		muscles, exercises string
	)
	if err := row.Scan(&t.ID, &t.Name, &muscles, &exercises); err != nil {
		return t, err
	}
	if err := json.Unmarshal([]byte(muscles), &t.PrimaryMuscles); err != nil {
		return t, fmt.Errorf("decoding muscles of %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(exercises), &t.Exercises); err != nil {
		return t, fmt.Errorf("decoding exercises of %s: %w", t.ID, err)
	}
	return t, nil
}
