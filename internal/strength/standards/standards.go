// Package standards holds the population strength-standard tables used to
// rank lifts: per exercise and gender, five ascending body-weight ratios.
package standards

import (
	"fmt"
	"strings"
)

// Gender selects which column of the standards applies.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender accepts "male"/"m" and "female"/"f" in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Standard holds the body-weight-ratio thresholds for one exercise.
type Standard struct {
	Beginner     float64 `yaml:"beginner" json:"beginner"`
	Intermediate float64 `yaml:"intermediate" json:"intermediate"`
	Advanced     float64 `yaml:"advanced" json:"advanced"`
	Elite        float64 `yaml:"elite" json:"elite"`
	God          float64 `yaml:"god" json:"god"`
}

// Validate reports whether the thresholds are positive and strictly increasing.
func (s Standard) Validate() error {
	levels := []float64{s.Beginner, s.Intermediate, s.Advanced, s.Elite, s.God}
	if levels[0] <= 0 {
		return fmt.Errorf("beginner threshold must be positive, got %v", levels[0])
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return fmt.Errorf("thresholds must be strictly increasing: %v", levels)
		}
	}
	return nil
}

// Source looks up the standard for an exercise and gender.
type Source interface {
	Lookup(exercise string, gender Gender) (Standard, bool)
}

// Table is an in-memory Source keyed by exercise ID then gender.
type Table map[string]map[Gender]Standard

var _ Source = Table(nil)

// Lookup implements Source.
func (t Table) Lookup(exercise string, gender Gender) (Standard, bool) {
	byGender, ok := t[exercise]
	if !ok {
		return Standard{}, false
	}
	s, ok := byGender[gender]
	return s, ok
}

// Validate checks every standard in the table.
func (t Table) Validate() error {
	for exercise, byGender := range t {
		for gender, s := range byGender {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%s/%s: %w", exercise, gender, err)
			}
		}
	}
	return nil
}

// Exercises returns the exercise IDs present in the table.
func (t Table) Exercises() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	return ids
}

// Merge returns a copy of t with every entry of override applied on top.
func (t Table) Merge(override Table) Table {
	merged := make(Table, len(t)+len(override))
	for exercise, byGender := range t {
		merged[exercise] = make(map[Gender]Standard, len(byGender))
		for g, s := range byGender {
			merged[exercise][g] = s
		}
	}
	for exercise, byGender := range override {
		if merged[exercise] == nil {
			merged[exercise] = make(map[Gender]Standard, len(byGender))
		}
		for g, s := range byGender {
			merged[exercise][g] = s
		}
	}
	return merged
}

// Default returns the built-in standards for the primary barbell lifts.
func Default() Table {
	return Table{
		"squat": {
			Male:   {Beginner: 0.75, Intermediate: 1.25, Advanced: 1.5, Elite: 2.2, God: 2.8},
			Female: {Beginner: 0.5, Intermediate: 0.75, Advanced: 1.25, Elite: 1.5, God: 2.0},
		},
		"bench_press": {
			Male:   {Beginner: 0.5, Intermediate: 1.0, Advanced: 1.25, Elite: 1.75, God: 2.25},
			Female: {Beginner: 0.25, Intermediate: 0.5, Advanced: 0.75, Elite: 1.0, God: 1.4},
		},
		"deadlift": {
			Male:   {Beginner: 1.0, Intermediate: 1.5, Advanced: 2.0, Elite: 2.5, God: 3.0},
			Female: {Beginner: 0.5, Intermediate: 1.0, Advanced: 1.25, Elite: 1.75, God: 2.3},
		},
		"overhead_press": {
			Male:   {Beginner: 0.35, Intermediate: 0.55, Advanced: 0.8, Elite: 1.05, God: 1.35},
			Female: {Beginner: 0.2, Intermediate: 0.35, Advanced: 0.5, Elite: 0.75, God: 1.0},
		},
		"barbell_row": {
			Male:   {Beginner: 0.5, Intermediate: 0.75, Advanced: 1.0, Elite: 1.5, God: 1.9},
			Female: {Beginner: 0.3, Intermediate: 0.5, Advanced: 0.7, Elite: 0.9, God: 1.2},
		},
		"power_clean": {
			Male:   {Beginner: 0.5, Intermediate: 0.8, Advanced: 1.1, Elite: 1.4, God: 1.7},
			Female: {Beginner: 0.3, Intermediate: 0.5, Advanced: 0.7, Elite: 0.9, God: 1.15},
		},
	}
}

// AgeFactor returns the expected strength retained at age relative to an
// 18-35 year old. Dividing a body-weight ratio by it normalizes older lifters.
// Ages under 18 are not adjusted.
func AgeFactor(age int) float64 {
	switch {
	case age <= 35:
		return 1.0
	case age <= 45:
		return 0.95
	case age <= 55:
		return 0.90
	case age < 65:
		return 0.85
	default:
		return 0.80
	}
}
