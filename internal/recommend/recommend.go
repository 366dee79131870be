// Package recommend suggests working weights from the lifter's stored
// personal records.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/coocood/freecache"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/onerm"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=recommend_test

// ProgressStore is the read side of the lifter's profile and progress.
// A nil result with a nil error means the record does not exist.
type ProgressStore interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	GetTopLiftByID(ctx context.Context, id string) (*models.UserProgress, error)
	GetAllFeaturedLifts(ctx context.Context) ([]models.UserProgress, error)
}

// DefaultIncrement is the plate increment recommendations are rounded to.
const DefaultIncrement = 5

const cacheSize = 1 << 20 // 1MB, freecache minimum is 512KB

// Options tunes an Engine. Zero values pick defaults; a zero CacheTTL
// disables caching.
type Options struct {
	CacheTTL  time.Duration
	Increment float64
}

// Engine computes recommended weights.
type Engine struct {
	store     ProgressStore
	cache     *freecache.Cache
	ttl       int
	increment float64
	logger    *slog.Logger
}

// New creates an Engine reading personal records from store.
func New(store ProgressStore, logger *slog.Logger, opts Options) *Engine {
	e := &Engine{
		store:     store,
		increment: opts.Increment,
		logger:    logger,
	}
	if e.increment <= 0 {
		e.increment = DefaultIncrement
	}
	if opts.CacheTTL > 0 {
		e.cache = freecache.NewCache(cacheSize)
		e.ttl = int(opts.CacheTTL.Seconds())
		if e.ttl < 1 {
			e.ttl = 1
		}
	}
	return e
}

// RecommendedWeight returns the suggested weight for targetReps of liftID,
// rounded to the engine increment. It returns 0 when no personal record is
// known or the lookup fails; failures are logged, never returned.
func (e *Engine) RecommendedWeight(ctx context.Context, liftID string, targetReps int) float64 {
	pr, err := e.PersonalRecord(ctx, liftID)
	if err != nil {
		e.logger.Warn("loading personal record", "lift", liftID, "error", err)
		return 0
	}
	return Weight(pr, targetReps, e.increment)
}

// Weight converts a 1RM into a working weight for targetReps rounded to
// increment. A non-positive 1RM yields 0.
func Weight(oneRM float64, targetReps int, increment float64) float64 {
	if oneRM <= 0 {
		return 0
	}
	w := onerm.WeightForPercentage(oneRM, onerm.PercentageFor(targetReps))
	return onerm.RoundToIncrement(w, increment)
}

// PersonalRecord returns the stored 1RM for liftID, or 0 when none exists.
func (e *Engine) PersonalRecord(ctx context.Context, liftID string) (float64, error) {
	p, err := e.lookup(ctx, liftID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, nil
	}
	return p.PersonalRecord, nil
}

func (e *Engine) lookup(ctx context.Context, liftID string) (*models.UserProgress, error) {
	key := []byte("pr:" + liftID)
	if e.cache != nil {
		if b, err := e.cache.Get(key); err == nil {
			var p models.UserProgress
			if err := json.Unmarshal(b, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := e.store.GetTopLiftByID(ctx, liftID)
	if err != nil {
		return nil, fmt.Errorf("getting top lift %s: %w", liftID, err)
	}
	if p == nil || e.cache == nil {
		return p, nil
	}

	b, err := json.Marshal(p)
	if err != nil {
		return p, nil
	}
	if err := e.cache.Set(key, b, e.ttl); err != nil {
		e.logger.Debug("caching personal record", "lift", liftID, "error", err)
	}
	return p, nil
}

// Invalidate drops any cached record for liftID.
func (e *Engine) Invalidate(liftID string) {
	if e.cache != nil {
		e.cache.Del([]byte("pr:" + liftID))
	}
}

// CacheStats reports cache hits and misses since creation.
func (e *Engine) CacheStats() (hits, misses int64) {
	if e.cache == nil {
		return 0, 0
	}
	return e.cache.HitCount(), e.cache.MissCount()
}
