package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/onerm"
)

// DefaultRest is the rest period started after each completed set.
const DefaultRest = 90 * time.Second

const kilogramIncrement = 2.5

// Deps are the collaborators of a Controller. Timer and Clock may be nil.
type Deps struct {
	Catalog     Catalog
	Store       ProgressStore
	Recommender Recommender
	Timer       RestTimer
	Clock       Clock
	Logger      *slog.Logger
	Rest        time.Duration
	Unit        models.Unit
}

// Result is returned by Finish.
type Result struct {
	State State `json:"session"`
	Stats Stats `json:"stats"`
}

// Controller drives one session. It is not safe for concurrent use.
type Controller struct {
	state   State
	catalog Catalog
	store   ProgressStore
	recs    Recommender
	timer   RestTimer
	clock   Clock
	logger  *slog.Logger
	rest    time.Duration
	unit    models.Unit
}

// NewController creates a Controller for a session that has not started.
func NewController(d Deps) *Controller {
	c := &Controller{
		catalog: d.Catalog,
		store:   d.Store,
		recs:    d.Recommender,
		timer:   d.Timer,
		clock:   d.Clock,
		logger:  d.Logger,
		rest:    d.Rest,
		unit:    d.Unit,
	}
	if c.timer == nil {
		c.timer = noopTimer{}
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.rest <= 0 {
		c.rest = DefaultRest
	}
	if c.unit == "" {
		c.unit = models.Pounds
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// Restore replaces the controller state with a previously saved snapshot.
func (c *Controller) Restore(s State) {
	c.state = s.Clone()
}

func (c *Controller) apply(ev Event) error {
	next, err := Apply(c.state, ev)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Initialize loads workoutID from the catalog and starts the session.
// On failure the session stays NotStarted.
func (c *Controller) Initialize(ctx context.Context, workoutID string) error {
	if c.state.Status != NotStarted {
		return ErrAlreadyStarted
	}
	tmpl, err := c.catalog.GetWorkoutByID(ctx, workoutID)
	if err != nil {
		return fmt.Errorf("loading workout %s: %w", workoutID, err)
	}
	if tmpl == nil {
		return fmt.Errorf("loading workout %s: %w", workoutID, ErrWorkoutNotFound)
	}

	if err := c.apply(Initialized{Template: *tmpl, StartTime: c.clock.Now(), Unit: c.unit}); err != nil {
		return err
	}
	c.logger.Info("workout started", "workout", workoutID, "exercises", len(c.state.Exercises))
	c.loadRecommendation(ctx)
	return nil
}

// CompleteSet records a completed set on the current exercise and starts the
// rest timer. Weight and reps must be positive.
func (c *Controller) CompleteSet(weight float64, reps int) error {
	if err := c.apply(SetCompleted{Weight: weight, Reps: reps}); err != nil {
		return err
	}
	c.timer.Start(c.rest)
	return nil
}

// SkipSet records a skipped set on the current exercise.
func (c *Controller) SkipSet(weight float64, reps int) error {
	return c.apply(SetSkipped{Weight: weight, Reps: reps})
}

// BeginEdit marks the set at index of the current exercise for editing.
func (c *Controller) BeginEdit(index int) error {
	return c.apply(EditStarted{Index: index})
}

// UpdateSet replaces the set at index and leaves edit mode.
func (c *Controller) UpdateSet(index int, weight float64, reps int) error {
	return c.apply(SetUpdated{Index: index, Weight: weight, Reps: reps})
}

// CancelEdit leaves edit mode without changes.
func (c *Controller) CancelEdit() error {
	return c.apply(EditCancelled{})
}

// JumpToExercise makes the exercise at index current and refreshes its
// recommendation.
func (c *Controller) JumpToExercise(ctx context.Context, index int) error {
	prev := c.state.CurrentExerciseIndex
	if err := c.apply(ExerciseSelected{Index: index}); err != nil {
		return err
	}
	if index != prev {
		c.loadRecommendation(ctx)
	}
	return nil
}

// NextExercise advances past the completed current exercise.
func (c *Controller) NextExercise(ctx context.Context) error {
	if err := c.apply(NextExercise{}); err != nil {
		return err
	}
	c.loadRecommendation(ctx)
	return nil
}

// Finish ends the session and computes its stats. Prior personal records are
// read from the progress store; if that fails the session stays in progress.
func (c *Controller) Finish(ctx context.Context) (Result, error) {
	next, err := Apply(c.state, FinishRequested{})
	if err != nil {
		return Result{}, err
	}

	prior := make(map[string]float64, len(c.state.Exercises))
	for _, ex := range c.state.Exercises {
		if _, ok := BestSet(ex.CompletedSets); !ok {
			continue
		}
		if _, seen := prior[ex.ID]; seen {
			continue
		}
		p, err := c.store.GetTopLiftByID(ctx, ex.ID)
		if err != nil {
			return Result{}, fmt.Errorf("loading progress for %s: %w", ex.ID, err)
		}
		if p != nil {
			prior[ex.ID] = p.PersonalRecord
		} else {
			prior[ex.ID] = 0
		}
	}

	stats := ComputeStats(c.state, c.clock.Now(), prior)
	c.state = next
	c.logger.Info("workout finished",
		"workout", c.state.WorkoutID,
		"duration", stats.Duration.Round(time.Second),
		"sets", stats.TotalSets,
		"volume", stats.TotalVolume,
		"records", stats.ProgressUpdates,
	)
	return Result{State: c.state.Clone(), Stats: stats}, nil
}

// Cancel discards the session.
func (c *Controller) Cancel() error {
	return c.apply(CancelRequested{})
}

// loadRecommendation stores a suggested weight for the current exercise.
// Recommendations are in pounds and converted to the session unit.
func (c *Controller) loadRecommendation(ctx context.Context) {
	if c.recs == nil {
		return
	}
	ex, ok := c.state.Current()
	if !ok {
		return
	}
	w := c.recs.RecommendedWeight(ctx, ex.ID, models.ParseTargetReps(ex.TargetReps))
	if c.state.Unit == models.Kilograms && w > 0 {
		w = onerm.RoundToIncrement(models.Kilograms.FromPounds(w), kilogramIncrement)
	}
	if err := c.apply(RecommendationLoaded{ExerciseIndex: c.state.CurrentExerciseIndex, Weight: w}); err != nil {
		c.logger.Warn("storing recommendation", "exercise", ex.ID, "error", err)
	}
}
