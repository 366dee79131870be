package percentile_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

func intPtr(v int) *int { return &v }

func TestEngine_Calculate(t *testing.T) {
	engine := percentile.NewDefault()

	tests := []struct {
		name     string
		lift     float64
		body     float64
		gender   standards.Gender
		exercise string
		age      *int
		want     float64
	}{
		{name: "exactly intermediate", lift: 225, body: 180, gender: standards.Male, exercise: "squat", want: 25},
		{name: "exactly beginner", lift: 135, body: 180, gender: standards.Male, exercise: "squat", want: 10},
		{name: "exactly advanced", lift: 270, body: 180, gender: standards.Male, exercise: "squat", want: 50},
		{name: "halfway into first band", lift: 67.5, body: 180, gender: standards.Male, exercise: "squat", want: 5},
		{name: "exactly god", lift: 504, body: 180, gender: standards.Male, exercise: "squat", want: 90},
		{name: "half of the top decile span", lift: 554.4, body: 180, gender: standards.Male, exercise: "squat", want: 94.5},
		{name: "capped at 99", lift: 2000, body: 180, gender: standards.Male, exercise: "squat", want: 99},
		{name: "age normalizes ratio", lift: 180, body: 180, gender: standards.Male, exercise: "squat", age: intPtr(70), want: 25},
		{name: "alias resolves", lift: 225, body: 180, gender: standards.Male, exercise: "Back Squat", want: 25},
		{name: "unknown exercise is neutral", lift: 100, body: 180, gender: standards.Male, exercise: "cable_fly", want: 50},
		{name: "zero lift", lift: 0, body: 180, gender: standards.Male, exercise: "squat", want: 0},
		{name: "negative bodyweight", lift: 225, body: -1, gender: standards.Male, exercise: "squat", want: 0},
		{name: "invalid input beats missing table", lift: 0, body: 180, gender: standards.Male, exercise: "cable_fly", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Calculate(tt.lift, tt.body, tt.gender, tt.exercise, tt.age)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEngine_Calculate_IntermediateBoundaryIsExact(t *testing.T) {
	engine := percentile.NewDefault()
	require.Equal(t, 25.0, engine.Calculate(225, 180, standards.Male, "squat", nil))
}

func TestEngine_Calculate_BoundedAndMonotone(t *testing.T) {
	engine := percentile.NewDefault()
	faker := gofakeit.New(99)

	for _, exercise := range standards.Default().Exercises() {
		for _, gender := range []standards.Gender{standards.Male, standards.Female} {
			body := faker.Float64Range(90, 320)
			prev := -1.0
			for lift := 0.0; lift <= body*4; lift += 2.5 {
				got := engine.Calculate(lift, body, gender, exercise, nil)
				require.GreaterOrEqual(t, got, 0.0)
				require.LessOrEqual(t, got, percentile.Max)
				require.GreaterOrEqual(t, got, prev, "%s/%s lift %v", exercise, gender, lift)
				prev = got
			}
		}
	}
}

type stubResolver map[string]string

func (s stubResolver) Resolve(exercise string) string { return s[exercise] }

// TestEngine_UsesInjectedDependencies verifies the engine consults the source
// and resolver it was constructed with rather than the package defaults.
func TestEngine_UsesInjectedDependencies(t *testing.T) {
	table := standards.Table{
		"zercher": {standards.Female: {Beginner: 0.5, Intermediate: 1, Advanced: 1.5, Elite: 2, God: 2.5}},
	}
	engine := percentile.New(table, stubResolver{"zs": "zercher"})

	assert.Equal(t, 25.0, engine.Calculate(100, 100, standards.Female, "zs", nil))
	assert.Equal(t, percentile.Unranked, engine.Calculate(100, 100, standards.Male, "zs", nil))
	assert.True(t, engine.Has("zs", standards.Female))
	assert.False(t, engine.Has("squat", standards.Female))
}

func TestFromRatio_Bands(t *testing.T) {
	std := standards.Standard{Beginner: 1, Intermediate: 2, Advanced: 3, Elite: 4, God: 5}
	assert.InDelta(t, 17.5, percentile.FromRatio(1.5, std), 1e-9)
	assert.InDelta(t, 37.5, percentile.FromRatio(2.5, std), 1e-9)
	assert.InDelta(t, 62.5, percentile.FromRatio(3.5, std), 1e-9)
	assert.InDelta(t, 82.5, percentile.FromRatio(4.5, std), 1e-9)
	assert.InDelta(t, 99, percentile.FromRatio(6, std), 1e-9)
	assert.Equal(t, 0.0, percentile.FromRatio(-1, std))
}
