package standards

import "strings"

// Resolver maps an exercise identifier as stored by the workout catalog to
// the ID its standard is filed under.
type Resolver interface {
	Resolve(exercise string) string
}

// Aliases is a Resolver backed by a static alias map. Identifiers are
// normalized (lowercase, spaces and hyphens to underscores) before lookup;
// unknown identifiers resolve to their normalized form.
type Aliases map[string]string

var _ Resolver = Aliases(nil)

// Resolve implements Resolver.
func (a Aliases) Resolve(exercise string) string {
	id := Normalize(exercise)
	if canonical, ok := a[id]; ok {
		return canonical
	}
	return id
}

// Normalize lowercases an exercise identifier and joins its words with underscores.
func Normalize(exercise string) string {
	id := strings.ToLower(strings.TrimSpace(exercise))
	id = strings.NewReplacer(" ", "_", "-", "_").Replace(id)
	for strings.Contains(id, "__") {
		id = strings.ReplaceAll(id, "__", "_")
	}
	return id
}

// DefaultAliases covers the common names of the lifts in Default.
func DefaultAliases() Aliases {
	return Aliases{
		"back_squat":            "squat",
		"barbell_squat":         "squat",
		"high_bar_squat":        "squat",
		"low_bar_squat":         "squat",
		"bench":                 "bench_press",
		"barbell_bench_press":   "bench_press",
		"flat_bench_press":      "bench_press",
		"conventional_deadlift": "deadlift",
		"barbell_deadlift":      "deadlift",
		"ohp":                   "overhead_press",
		"military_press":        "overhead_press",
		"standing_press":        "overhead_press",
		"press":                 "overhead_press",
		"bent_over_row":         "barbell_row",
		"pendlay_row":           "barbell_row",
		"row":                   "barbell_row",
		"clean":                 "power_clean",
	}
}
