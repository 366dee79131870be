package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
)

func set(n int, weight float64, reps int, completed bool) session.SetCompletion {
	return session.SetCompletion{SetNumber: n, Weight: weight, Unit: models.Pounds, Reps: reps, Completed: completed}
}

func TestComputeStats_TotalsSkipSkippedVolume(t *testing.T) {
	s := session.State{
		Status:    session.InProgress,
		StartTime: start,
		Exercises: []session.Exercise{
			{ID: "bench_press", TargetSets: 2, CompletedSets: []session.SetCompletion{
				set(1, 135, 8, true),
				set(2, 145, 6, true),
			}},
			{ID: "dip", TargetSets: 1, CompletedSets: []session.SetCompletion{
				set(1, 95, 10, false),
			}},
		},
	}

	st := session.ComputeStats(s, start.Add(45*time.Minute), nil)
	assert.Equal(t, 3, st.TotalSets)
	assert.Equal(t, 1950.0, st.TotalVolume)
	assert.Equal(t, 45*time.Minute, st.Duration)
	// bench has no prior record, the skipped-only exercise has no best set
	assert.Equal(t, 1, st.ProgressUpdates)
}

func TestComputeStats_ProgressUpdates(t *testing.T) {
	s := session.State{
		StartTime: start,
		Exercises: []session.Exercise{
			{ID: "squat", Name: "Squat", CompletedSets: []session.SetCompletion{set(1, 225, 5, true)}},
			{ID: "bench_press", Name: "Bench", CompletedSets: []session.SetCompletion{set(1, 185, 5, true)}},
			{ID: "deadlift", Name: "Deadlift", CompletedSets: []session.SetCompletion{set(1, 315, 1, true)}},
		},
	}
	prior := map[string]float64{
		"squat":       250, // 225x5 estimates 260
		"bench_press": 300,
		"deadlift":    315, // equal is not a record
	}

	st := session.ComputeStats(s, start, prior)
	require.Equal(t, 1, st.ProgressUpdates)
	require.Len(t, st.Records, 1)
	rec := st.Records[0]
	assert.Equal(t, "squat", rec.ExerciseID)
	assert.Equal(t, 260.0, rec.EstimatedMax)
	assert.Equal(t, 250.0, rec.Previous)
}

func TestComputeStats_NegativeDurationClamped(t *testing.T) {
	st := session.ComputeStats(session.State{StartTime: start}, start.Add(-time.Minute), nil)
	assert.Equal(t, time.Duration(0), st.Duration)
}

func TestBestSet(t *testing.T) {
	t.Run("ties go to earlier set", func(t *testing.T) {
		best, ok := session.BestSet([]session.SetCompletion{
			set(1, 100, 10, true),
			set(2, 200, 5, true),
			set(3, 125, 8, true),
		})
		require.True(t, ok)
		assert.Equal(t, 1, best.SetNumber)
	})
	t.Run("skipped sets ignored", func(t *testing.T) {
		best, ok := session.BestSet([]session.SetCompletion{
			set(1, 500, 5, false),
			set(2, 100, 5, true),
		})
		require.True(t, ok)
		assert.Equal(t, 2, best.SetNumber)
	})
	t.Run("no completed sets", func(t *testing.T) {
		_, ok := session.BestSet([]session.SetCompletion{set(1, 100, 5, false)})
		assert.False(t, ok)
		_, ok = session.BestSet(nil)
		assert.False(t, ok)
	})
}

func TestEstimatedMax_Kilograms(t *testing.T) {
	got := session.EstimatedMax(session.SetCompletion{Weight: 100, Unit: models.Kilograms, Reps: 1, Completed: true})
	assert.InDelta(t, 220.46, got, 0.01)
}
