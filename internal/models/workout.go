package models

import (
	"strconv"
	"strings"
	"unicode"
)

// WorkoutTemplate is a planned workout from the catalog.
type WorkoutTemplate struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	PrimaryMuscles []string           `json:"primary_muscles" yaml:"primary_muscles"`
	Exercises      []ExerciseTemplate `json:"exercises" yaml:"exercises"`
}

// ExerciseTemplate is one planned exercise. Reps is free text such as
// "5", "8-12" or "5+".
type ExerciseTemplate struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Sets int    `json:"sets" yaml:"sets"`
	Reps string `json:"reps" yaml:"reps"`
}

// ParseTargetReps returns the leading rep count of a target such as "8-12"
// (8) or "5+" (5). It returns 0 when the target has no number ("AMRAP").
func ParseTargetReps(target string) int {
	target = strings.TrimSpace(target)
	end := strings.IndexFunc(target, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(target)
	}
	n, err := strconv.Atoi(target[:end])
	if err != nil {
		return 0
	}
	return n
}

// DefaultTemplates returns the built-in workout catalog.
func DefaultTemplates() []WorkoutTemplate {
	return []WorkoutTemplate{
		{ID: "full-body-a", Name: "Full Body A", PrimaryMuscles: []string{"quads", "chest", "back"}, Exercises: []ExerciseTemplate{
			{ID: "squat", Name: "Back Squat", Sets: 3, Reps: "5"},
			{ID: "bench_press", Name: "Bench Press", Sets: 3, Reps: "5"},
			{ID: "barbell_row", Name: "Barbell Row", Sets: 3, Reps: "8"},
		}},
		{ID: "full-body-b", Name: "Full Body B", PrimaryMuscles: []string{"hamstrings", "shoulders", "back"}, Exercises: []ExerciseTemplate{
			{ID: "squat", Name: "Back Squat", Sets: 3, Reps: "5"},
			{ID: "overhead_press", Name: "Overhead Press", Sets: 3, Reps: "5"},
			{ID: "deadlift", Name: "Deadlift", Sets: 1, Reps: "5"},
		}},
		{ID: "push-a", Name: "Push A", PrimaryMuscles: []string{"chest", "shoulders", "triceps"}, Exercises: []ExerciseTemplate{
			{ID: "bench_press", Name: "Bench Press", Sets: 4, Reps: "6-8"},
			{ID: "overhead_press", Name: "Overhead Press", Sets: 3, Reps: "8-10"},
			{ID: "dip", Name: "Dip", Sets: 3, Reps: "AMRAP"},
		}},
		{ID: "pull-a", Name: "Pull A", PrimaryMuscles: []string{"back", "biceps"}, Exercises: []ExerciseTemplate{
			{ID: "deadlift", Name: "Deadlift", Sets: 3, Reps: "5"},
			{ID: "barbell_row", Name: "Barbell Row", Sets: 4, Reps: "8-12"},
			{ID: "power_clean", Name: "Power Clean", Sets: 5, Reps: "3"},
		}},
	}
}
