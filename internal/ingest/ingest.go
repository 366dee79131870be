// Package ingest imports workout history from other training apps. Each
// imported session becomes a finished workout and new personal records are
// scored the same way as live sessions.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/ingest/alpha"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/progress"
	"github.com/claude/liftrank/internal/session"
	"github.com/claude/liftrank/internal/strength/standards"
)

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int      `json:"sessions_received"`
	WorkoutsInserted int      `json:"workouts_inserted"`
	WorkoutsSkipped  int      `json:"workouts_skipped"`
	SetsInserted     int      `json:"sets_inserted"`
	WarmupsSkipped   int      `json:"warmups_skipped"`
	Records          int      `json:"records"`
	Updated          []string `json:"updated,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// Sink persists imported workouts for one lifter.
type Sink interface {
	// PersonalRecord returns the stored 1RM in pounds, 0 if none.
	PersonalRecord(ctx context.Context, exerciseID string) (float64, error)
	WorkoutExists(ctx context.Context, id uuid.UUID) (bool, error)
	// SaveImported stores the workout and its progress updates atomically.
	SaveImported(ctx context.Context, id uuid.UUID, res session.Result, updates []models.UserProgress) error
}

// Importer converts exports into finished sessions.
type Importer struct {
	resolver standards.Resolver
	updater  *progress.Updater
	log      *slog.Logger
}

// New creates an Importer. A nil resolver uses the built-in aliases.
func New(updater *progress.Updater, resolver standards.Resolver, log *slog.Logger) *Importer {
	if resolver == nil {
		resolver = standards.DefaultAliases()
	}
	return &Importer{resolver: resolver, updater: updater, log: log}
}

// Alpha imports an Alpha Progression CSV export. Sessions are applied oldest
// first so records progress through the history; sessions imported before
// are skipped.
func (im *Importer) Alpha(ctx context.Context, r io.Reader, sink Sink, profile models.UserProfile) (*Result, error) {
	sessions, err := alpha.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing alpha export: %w", err)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Date.Before(sessions[j].Date) })

	result := &Result{SessionsReceived: len(sessions)}
	best := map[string]float64{}
	updated := map[string]bool{}

	for _, s := range sessions {
		id := s.WorkoutID()
		exists, err := sink.WorkoutExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("checking workout %s: %w", id, err)
		}
		if exists {
			result.WorkoutsSkipped++
			continue
		}

		st := s.State(im.resolver.Resolve)
		for _, ex := range st.Exercises {
			if _, ok := best[ex.ID]; ok {
				continue
			}
			pr, err := sink.PersonalRecord(ctx, ex.ID)
			if err != nil {
				return nil, fmt.Errorf("loading record for %s: %w", ex.ID, err)
			}
			best[ex.ID] = pr
		}

		res := session.Result{State: st, Stats: session.ComputeStats(st, s.Date.Add(s.Length()), best)}
		updates := im.updater.FromResult(profile, res)
		for i := range updates {
			updates[i].LastUpdated = s.Date.UTC()
		}
		if err := sink.SaveImported(ctx, id, res, updates); err != nil {
			return nil, fmt.Errorf("saving %s on %s: %w", s.Name, s.Date.Format("2006-01-02"), err)
		}

		for _, rec := range res.Stats.Records {
			best[rec.ExerciseID] = rec.EstimatedMax
			updated[rec.ExerciseID] = true
		}
		result.WorkoutsInserted++
		result.SetsInserted += res.Stats.TotalSets
		result.WarmupsSkipped += s.WarmupSets()
		result.Records += res.Stats.ProgressUpdates
	}

	for id := range updated {
		result.Updated = append(result.Updated, id)
	}
	sort.Strings(result.Updated)
	result.Message = fmt.Sprintf("imported %d of %d sessions", result.WorkoutsInserted, result.SessionsReceived)
	im.log.Info("alpha import finished",
		"sessions", result.SessionsReceived,
		"inserted", result.WorkoutsInserted,
		"skipped", result.WorkoutsSkipped,
		"records", result.Records,
	)
	return result, nil
}
