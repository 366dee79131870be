package session

import (
	"context"
	"time"

	"github.com/claude/liftrank/internal/models"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=session_test

// Catalog resolves workout templates. A nil template with a nil error means
// the workout does not exist.
type Catalog interface {
	GetWorkoutByID(ctx context.Context, id string) (*models.WorkoutTemplate, error)
}

// ProgressStore is the read side of the lifter's profile and progress.
type ProgressStore interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	GetTopLiftByID(ctx context.Context, id string) (*models.UserProgress, error)
	GetAllFeaturedLifts(ctx context.Context) ([]models.UserProgress, error)
}

// Recommender suggests a working weight in pounds, 0 meaning no suggestion.
type Recommender interface {
	RecommendedWeight(ctx context.Context, liftID string, targetReps int) float64
}

// RestTimer is started after every completed set.
type RestTimer interface {
	Start(d time.Duration)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type noopTimer struct{}

func (noopTimer) Start(time.Duration) {}
