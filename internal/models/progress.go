package models

import (
	"time"

	"github.com/claude/liftrank/internal/strength/standards"
	"github.com/claude/liftrank/internal/strength/tier"
)

// UserProfile holds the lifter attributes the rankings depend on.
type UserProfile struct {
	UserID         int              `json:"user_id"`
	DisplayName    string           `json:"display_name"`
	BodyWeight     float64          `json:"body_weight"`
	BodyWeightUnit Unit             `json:"body_weight_unit"`
	Gender         standards.Gender `json:"gender"`
	Age            *int             `json:"age,omitempty"`
}

// BodyWeightPounds returns the body weight in pounds.
func (p UserProfile) BodyWeightPounds() float64 {
	return p.BodyWeightUnit.ToPounds(p.BodyWeight)
}

// UserProgress is the best known result for one exercise.
type UserProgress struct {
	WorkoutID         string    `json:"workout_id"`
	PersonalRecord    float64   `json:"personal_record"` // 1RM in lbs
	PercentileRanking float64   `json:"percentile_ranking"`
	StrengthLevel     tier.Tier `json:"strength_level"`
	Featured          bool      `json:"featured"`
	LastUpdated       time.Time `json:"last_updated"`
}
