package onerm_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/liftrank/internal/strength/onerm"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{name: "single rep is the max", weight: 315, reps: 1, want: 315},
		{name: "five reps", weight: 100, reps: 5, want: 116},
		{name: "eight reps", weight: 225, reps: 8, want: 280},
		{name: "three reps", weight: 315, reps: 3, want: 344},
		{name: "ten reps", weight: 100, reps: 10, want: 131},
		{name: "fifteen reps still estimated", weight: 100, reps: 15, want: 148},
		{name: "above fifteen unchanged", weight: 100, reps: 16, want: 100},
		{name: "zero reps invalid", weight: 100, reps: 0, want: 0},
		{name: "negative weight invalid", weight: -5, reps: 5, want: 0},
		{name: "zero weight invalid", weight: 0, reps: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, onerm.Estimate(tt.weight, tt.reps))
		})
	}
}

func TestEstimate_SingleRepIdentity(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		w := faker.Float64Range(0.5, 1000)
		require.Equal(t, w, onerm.Estimate(w, 1), "weight %v", w)
	}
}

func TestEstimate_NonDecreasingInReps(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 200; i++ {
		w := faker.Float64Range(1, 800)
		prev := onerm.Estimate(w, 2)
		for reps := 3; reps <= onerm.MaxEstimatedReps; reps++ {
			got := onerm.Estimate(w, reps)
			require.GreaterOrEqual(t, got, prev, "weight %v reps %d", w, reps)
			prev = got
		}
	}
}

func TestBrzycki_HighRepGuard(t *testing.T) {
	assert.Equal(t, 100.0, onerm.Brzycki(100, 37))
	assert.Equal(t, 100.0, onerm.Brzycki(100, 50))
	assert.InDelta(t, 112.5, onerm.Brzycki(100, 5), 1e-9)
}

func TestPercentageFor(t *testing.T) {
	assert.Equal(t, 100.0, onerm.PercentageFor(1))
	assert.Equal(t, 87.0, onerm.PercentageFor(5))
	assert.Equal(t, 80.0, onerm.PercentageFor(8))
	assert.Equal(t, 70.0, onerm.PercentageFor(12))
	assert.Equal(t, 70.0, onerm.PercentageFor(20))
	assert.Equal(t, 100.0, onerm.PercentageFor(0))

	for reps := 2; reps <= 12; reps++ {
		assert.Less(t, onerm.PercentageFor(reps), onerm.PercentageFor(reps-1), "reps %d", reps)
	}
}

func TestWeightForPercentage(t *testing.T) {
	assert.Equal(t, 261.0, onerm.WeightForPercentage(300, 87))
	assert.Equal(t, 0.0, onerm.WeightForPercentage(0, 87))
	assert.Equal(t, 158.0, onerm.WeightForPercentage(225, 70))
}

func TestRoundToIncrement(t *testing.T) {
	assert.Equal(t, 260.0, onerm.RoundToIncrement(261, 5))
	assert.Equal(t, 265.0, onerm.RoundToIncrement(262.5, 5))
	assert.Equal(t, 102.5, onerm.RoundToIncrement(101.6, 2.5))
	assert.Equal(t, 101.6, onerm.RoundToIncrement(101.6, 0))
}

func TestUnitConversion(t *testing.T) {
	assert.InDelta(t, 220.462, onerm.ToPounds(100), 0.001)
	assert.InDelta(t, 100, onerm.ToKilograms(onerm.ToPounds(100)), 1e-9)
}

func TestTable(t *testing.T) {
	chart := onerm.Table(200)
	require.Len(t, chart, 12)
	assert.Equal(t, onerm.RepWeight{Reps: 1, Percentage: 100, Weight: 200}, chart[0])
	assert.Equal(t, onerm.RepWeight{Reps: 12, Percentage: 70, Weight: 140}, chart[11])
}
