package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claude/liftrank/internal/models"
)

// GetProfile returns the lifter's profile, or nil if none was saved yet.
func (s *Store) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	p := models.UserProfile{UserID: LocalUserID}
	err := s.db.QueryRowContext(ctx,
		`SELECT display_name, body_weight, body_weight_unit, gender, age FROM profile WHERE id = 1`,
	).Scan(&p.DisplayName, &p.BodyWeight, &p.BodyWeightUnit, &p.Gender, &p.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &p, nil
}

// SaveProfile stores the lifter's profile.
func (s *Store) SaveProfile(ctx context.Context, p models.UserProfile) error {
	if p.BodyWeight <= 0 {
		return fmt.Errorf("saving profile: body weight must be positive")
	}
	if p.BodyWeightUnit == "" {
		p.BodyWeightUnit = models.Pounds
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profile (id, display_name, body_weight, body_weight_unit, gender, age)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		p.DisplayName, p.BodyWeight, string(p.BodyWeightUnit), string(p.Gender), p.Age)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
