package models

import (
	"fmt"
	"strings"

	"github.com/claude/liftrank/internal/strength/onerm"
)

// Unit is the weight unit a lift was recorded in.
type Unit string

const (
	Pounds    Unit = "lbs"
	Kilograms Unit = "kg"
)

// ParseUnit accepts lbs/lb/pounds and kg/kgs/kilograms; empty means pounds.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lbs", "lb", "pounds":
		return Pounds, nil
	case "kg", "kgs", "kilograms":
		return Kilograms, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// ToPounds converts weight in unit u to pounds.
func (u Unit) ToPounds(weight float64) float64 {
	if u == Kilograms {
		return onerm.ToPounds(weight)
	}
	return weight
}

// FromPounds converts a weight in pounds to unit u.
func (u Unit) FromPounds(lbs float64) float64 {
	if u == Kilograms {
		return onerm.ToKilograms(lbs)
	}
	return lbs
}

// LiftAttempt is one recorded (weight, reps) pair.
type LiftAttempt struct {
	Weight float64 `json:"weight"`
	Unit   Unit    `json:"unit"`
	Reps   int     `json:"reps"`
}

// Valid reports whether the attempt can be scored.
func (a LiftAttempt) Valid() bool {
	return a.Weight > 0 && a.Reps >= 1
}

// Pounds returns the attempt weight in pounds.
func (a LiftAttempt) Pounds() float64 {
	return a.Unit.ToPounds(a.Weight)
}

// EstimatedMax returns the estimated 1RM of the attempt in pounds,
// or 0 for invalid attempts.
func (a LiftAttempt) EstimatedMax() float64 {
	if !a.Valid() {
		return 0
	}
	return onerm.Estimate(a.Pounds(), a.Reps)
}
