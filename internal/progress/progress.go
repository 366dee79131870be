// Package progress derives updated per-exercise progress from finished
// sessions: the new personal record with its percentile and tier.
package progress

import (
	"math"
	"time"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/tier"
)

// Updater scores personal records against the lifter's profile.
type Updater struct {
	engine *percentile.Engine
	now    func() time.Time
}

// NewUpdater creates an Updater. A nil engine uses the built-in standards.
func NewUpdater(engine *percentile.Engine) *Updater {
	if engine == nil {
		engine = percentile.NewDefault()
	}
	return &Updater{engine: engine, now: time.Now}
}

// Score returns the progress entry for a 1RM in pounds on exercise.
func (u *Updater) Score(profile models.UserProfile, exercise string, oneRM float64) models.UserProgress {
	p := u.engine.Calculate(oneRM, profile.BodyWeightPounds(), profile.Gender, exercise, profile.Age)
	// The stored level always matches the stored ranking.
	ranking := math.Round(p*10) / 10
	return models.UserProgress{
		WorkoutID:         exercise,
		PersonalRecord:    oneRM,
		PercentileRanking: ranking,
		StrengthLevel:     tier.For(ranking),
		LastUpdated:       u.now().UTC(),
	}
}

// FromResult returns one updated entry per new personal record in res.
func (u *Updater) FromResult(profile models.UserProfile, res session.Result) []models.UserProgress {
	if len(res.Stats.Records) == 0 {
		return nil
	}
	updates := make([]models.UserProgress, 0, len(res.Stats.Records))
	for _, rec := range res.Stats.Records {
		updates = append(updates, u.Score(profile, rec.ExerciseID, rec.EstimatedMax))
	}
	return updates
}
