package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface. Lookups that
// find nothing return a nil value and a nil error, except GetWorkout which
// returns storage.ErrNotFound.
type DataSource interface {
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	QueryProgress(ctx context.Context, userID int, featuredOnly bool) ([]models.UserProgress, error)
	ListWorkoutTemplates(ctx context.Context) ([]models.WorkoutTemplate, error)
	GetWorkoutTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*storage.WorkoutDetail, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.VolumeSummaryPeriod, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
