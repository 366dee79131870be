// Package calc bundles the strength calculators into result types shared by
// the HTTP API, the MCP tools and the CLI.
package calc

import (
	"errors"
	"math"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/onerm"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
	"github.com/claude/liftrank/internal/strength/tier"
)

// ErrInvalidAttempt is returned for attempts with weight <= 0 or reps < 1.
var ErrInvalidAttempt = errors.New("weight must be positive and reps at least 1")

// Formulas holds the individual estimates Estimate averages.
type Formulas struct {
	Epley    float64 `json:"epley"`
	Brzycki  float64 `json:"brzycki"`
	Lombardi float64 `json:"lombardi"`
}

// OneRMResult is an estimated 1RM with its rep chart, in the attempt's unit
// unless noted.
type OneRMResult struct {
	Weight          float64           `json:"weight"`
	Unit            models.Unit       `json:"unit"`
	Reps            int               `json:"reps"`
	EstimatedMax    float64           `json:"estimated_max"`
	EstimatedMaxLbs float64           `json:"estimated_max_lbs"`
	Formulas        Formulas          `json:"formulas"`
	Table           []onerm.RepWeight `json:"table"`
}

// OneRM estimates the 1RM of a.
func OneRM(a models.LiftAttempt) (OneRMResult, error) {
	if a.Unit == "" {
		a.Unit = models.Pounds
	}
	if !a.Valid() {
		return OneRMResult{}, ErrInvalidAttempt
	}
	est := onerm.Estimate(a.Weight, a.Reps)
	return OneRMResult{
		Weight:          a.Weight,
		Unit:            a.Unit,
		Reps:            a.Reps,
		EstimatedMax:    est,
		EstimatedMaxLbs: a.EstimatedMax(),
		Formulas: Formulas{
			Epley:    round1(onerm.Epley(a.Weight, a.Reps)),
			Brzycki:  round1(onerm.Brzycki(a.Weight, a.Reps)),
			Lombardi: round1(onerm.Lombardi(a.Weight, a.Reps)),
		},
		Table: onerm.Table(est),
	}, nil
}

// TierResult describes a percentile on the tier ladder.
type TierResult struct {
	Percentile float64    `json:"percentile"`
	Tier       tier.Tier  `json:"tier"`
	Color      string     `json:"color"`
	Next       *tier.Tier `json:"next"`
	Needed     int        `json:"needed"`
}

// Tier places p on the tier ladder.
func Tier(p float64) TierResult {
	next := tier.Next(p)
	return TierResult{
		Percentile: p,
		Tier:       next.Current,
		Color:      tier.Color(next.Current),
		Next:       next.Next,
		Needed:     next.Needed,
	}
}

// RankResult is the ranking of one attempt against the strength standards.
type RankResult struct {
	Exercise      string  `json:"exercise"`
	EstimatedMax  float64 `json:"estimated_max_lbs"`
	BodyWeightLbs float64 `json:"body_weight_lbs"`
	// Ranked is false when no standard exists for the exercise; the
	// percentile is then the neutral default.
	Ranked bool `json:"ranked"`
	TierResult
}

// Rank scores attempt a on exercise for the lifter described by profile.
func Rank(e *percentile.Engine, profile models.UserProfile, exercise string, a models.LiftAttempt) (RankResult, error) {
	if !a.Valid() {
		return RankResult{}, ErrInvalidAttempt
	}
	if profile.BodyWeight <= 0 {
		return RankResult{}, errors.New("body weight must be positive")
	}
	if profile.Gender == "" {
		profile.Gender = standards.Male
	}
	est := a.EstimatedMax()
	bw := profile.BodyWeightPounds()
	p := round1(e.Calculate(est, bw, profile.Gender, exercise, profile.Age))
	return RankResult{
		Exercise:      exercise,
		EstimatedMax:  est,
		BodyWeightLbs: round1(bw),
		Ranked:        e.Has(exercise, profile.Gender),
		TierResult:    Tier(p),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
