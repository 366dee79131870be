package alpha

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
)

// TemplateID marks workouts imported from Alpha Progression.
const TemplateID = "alpha-progression"

var namespace = uuid.MustParse("4b0f6f0e-6c55-4e0b-9a43-5b8f3f0c2a71")

// WorkoutID is stable for a session so re-importing an export is a no-op.
func (s Session) WorkoutID() uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(s.Date.UTC().Format("2006-01-02T15:04")+"|"+s.Name))
}

// State converts s into a finished session in kilograms. Warmups are
// dropped. Bodyweight-plus sets are kept as not completed so they add no
// volume and set no records. resolve maps exercise names to IDs.
func (s Session) State(resolve func(string) string) session.State {
	st := session.State{
		Status:    session.Finished,
		WorkoutID: TemplateID,
		Title:     s.Name,
		StartTime: s.Date,
		Unit:      models.Kilograms,
		Exercises: make([]session.Exercise, 0, len(s.Exercises)),
	}
	for _, ex := range s.Exercises {
		out := session.Exercise{
			ID:          resolve(ex.Name),
			Name:        ex.Name,
			TargetReps:  strconv.Itoa(ex.TargetReps),
			IsCompleted: true,
		}
		for _, set := range ex.Sets {
			if set.IsWarmup {
				continue
			}
			out.CompletedSets = append(out.CompletedSets, session.SetCompletion{
				SetNumber: len(out.CompletedSets) + 1,
				Weight:    set.WeightKg,
				Unit:      models.Kilograms,
				Reps:      set.Reps,
				Completed: !set.IsBodyweightPlus && set.WeightKg > 0 && set.Reps > 0,
			})
		}
		out.TargetSets = len(out.CompletedSets)
		st.Exercises = append(st.Exercises, out)
	}
	return st
}

// WarmupSets counts the warmup sets State drops.
func (s Session) WarmupSets() int {
	n := 0
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			if set.IsWarmup {
				n++
			}
		}
	}
	return n
}
