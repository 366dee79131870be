package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/session"
)

// idleTimeout is how long an untouched session stays in memory.
const idleTimeout = 12 * time.Hour

// userScope scopes the store to one user for the session controller and
// the recommendation engine.
type userScope struct {
	db     Store
	userID int
}

var (
	_ session.Catalog         = userScope{}
	_ session.ProgressStore   = userScope{}
	_ recommend.ProgressStore = userScope{}
)

func (u userScope) GetWorkoutByID(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	return u.db.GetWorkoutTemplate(ctx, id)
}

func (u userScope) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	return u.db.GetProfile(ctx, u.userID)
}

func (u userScope) GetTopLiftByID(ctx context.Context, id string) (*models.UserProgress, error) {
	return u.db.GetTopLift(ctx, u.userID, id)
}

func (u userScope) GetAllFeaturedLifts(ctx context.Context) ([]models.UserProgress, error) {
	return u.db.QueryProgress(ctx, u.userID, true)
}

// restTimer records when the current rest period ends. It is guarded by
// the owning liveSession's mutex.
type restTimer struct {
	now    func() time.Time
	endsAt time.Time
}

func (t *restTimer) Start(d time.Duration) {
	t.endsAt = t.now().Add(d)
}

// Remaining returns the rest time left, never negative.
func (t *restTimer) Remaining() time.Duration {
	if t.endsAt.IsZero() {
		return 0
	}
	if d := t.endsAt.Sub(t.now()); d > 0 {
		return d
	}
	return 0
}

// liveSession is one in-memory workout session.
type liveSession struct {
	mu      sync.Mutex
	id      uuid.UUID
	userID  int
	ctrl    *session.Controller
	timer   *restTimer
	touched time.Time

	// result is kept when a finished session could not be saved so the
	// save can be retried.
	result *session.Result
}

// registry holds the live sessions of all users.
type registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*liveSession
}

func newRegistry() *registry {
	return &registry{sessions: make(map[uuid.UUID]*liveSession)}
}

// add stores ls and drops sessions idle since before now-idleTimeout.
// It returns the number of dropped sessions.
func (r *registry) add(ls *liveSession, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, other := range r.sessions {
		if other.mu.TryLock() {
			idle := now.Sub(other.touched) > idleTimeout
			other.mu.Unlock()
			if idle {
				delete(r.sessions, id)
				dropped++
			}
		}
	}
	r.sessions[ls.id] = ls
	return dropped
}

// get returns the session id if it belongs to userID.
func (r *registry) get(id uuid.UUID, userID int) (*liveSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ls, ok := r.sessions[id]
	if !ok || ls.userID != userID {
		return nil, false
	}
	return ls, true
}

func (r *registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// recommenders keeps one recommendation engine per user so cached records
// never cross users.
type recommenders struct {
	db   Store
	opts recommend.Options
	log  *slog.Logger

	mu     sync.Mutex
	byUser map[int]*recommend.Engine
}

func newRecommenders(db Store, opts recommend.Options, log *slog.Logger) *recommenders {
	return &recommenders{db: db, opts: opts, log: log, byUser: make(map[int]*recommend.Engine)}
}

func (r *recommenders) forUser(userID int) *recommend.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byUser[userID]
	if !ok {
		e = recommend.New(userScope{db: r.db, userID: userID}, r.log, r.opts)
		r.byUser[userID] = e
	}
	return e
}

// cacheStats sums the cache counters of all engines.
func (r *recommenders) cacheStats() (hits, misses int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byUser {
		h, m := e.CacheStats()
		hits += h
		misses += m
	}
	return hits, misses
}
