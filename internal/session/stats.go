package session

import (
	"time"

	"github.com/claude/liftrank/internal/strength/onerm"
)

// Stats summarizes a finished session.
type Stats struct {
	Duration        time.Duration    `json:"duration"`
	TotalSets       int              `json:"total_sets"`
	TotalVolume     float64          `json:"total_volume"`
	ProgressUpdates int              `json:"progress_updates"`
	Records         []PersonalRecord `json:"records,omitempty"`
}

// PersonalRecord is a best set whose estimated 1RM beats the previous record.
// EstimatedMax and Previous are in pounds.
type PersonalRecord struct {
	ExerciseID   string        `json:"exercise_id"`
	ExerciseName string        `json:"exercise_name"`
	Set          SetCompletion `json:"set"`
	EstimatedMax float64       `json:"estimated_max"`
	Previous     float64       `json:"previous"`
}

// BestSet returns the completed set with the highest weight × reps. Ties go
// to the earlier set.
func BestSet(sets []SetCompletion) (SetCompletion, bool) {
	var (
		best  SetCompletion
		found bool
	)
	for _, set := range sets {
		if !set.Completed {
			continue
		}
		if !found || set.Volume() > best.Volume() {
			best = set
			found = true
		}
	}
	return best, found
}

// EstimatedMax returns the estimated 1RM of set in pounds.
func EstimatedMax(set SetCompletion) float64 {
	return onerm.Estimate(set.Unit.ToPounds(set.Weight), set.Reps)
}

// ComputeStats summarizes s as of end. prior maps exercise ID to the stored
// personal record in pounds; a missing entry counts as no record.
func ComputeStats(s State, end time.Time, prior map[string]float64) Stats {
	st := Stats{Duration: end.Sub(s.StartTime)}
	if st.Duration < 0 {
		st.Duration = 0
	}
	for _, ex := range s.Exercises {
		st.TotalSets += len(ex.CompletedSets)
		for _, set := range ex.CompletedSets {
			st.TotalVolume += set.Volume()
		}

		best, ok := BestSet(ex.CompletedSets)
		if !ok {
			continue
		}
		est := EstimatedMax(best)
		if est > prior[ex.ID] {
			st.ProgressUpdates++
			st.Records = append(st.Records, PersonalRecord{
				ExerciseID:   ex.ID,
				ExerciseName: ex.Name,
				Set:          best,
				EstimatedMax: est,
				Previous:     prior[ex.ID],
			})
		}
	}
	return st
}
