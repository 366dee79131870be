package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/standards"
)

// GetOrCreateUser finds or creates a user by Tailscale login name.
// Returns the user ID. Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting user %s: %w", login, err)
	}
	return id, nil
}

// GetProfile returns the lifter profile for userID, or nil if the user does
// not exist or has not recorded a body weight yet.
func (db *DB) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var (
		p      models.UserProfile
		weight *float64
		unit   string
		gender string
	)
	err := db.Pool.QueryRow(ctx,
		`SELECT id, display_name, body_weight, body_weight_unit, gender, age
		 FROM users WHERE id = $1`, userID,
	).Scan(&p.UserID, &p.DisplayName, &weight, &unit, &gender, &p.Age)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	if weight == nil {
		return nil, nil
	}
	p.BodyWeight = *weight
	p.BodyWeightUnit = models.Unit(unit)
	p.Gender = standards.Gender(gender)
	return &p, nil
}

// UpdateProfile stores the ranking attributes of a user.
func (db *DB) UpdateProfile(ctx context.Context, p models.UserProfile) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET body_weight = $2, body_weight_unit = $3, gender = $4, age = $5
		 WHERE id = $1`,
		p.UserID, p.BodyWeight, string(p.BodyWeightUnit), string(p.Gender), p.Age)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating profile: user %d not found", p.UserID)
	}
	return nil
}
