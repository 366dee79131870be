package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
	"github.com/claude/liftrank/internal/storage"
)

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

type sessionView struct {
	ID               uuid.UUID      `json:"id"`
	Session          session.State  `json:"session"`
	RestRemainingSec int            `json:"rest_remaining_sec"`
	Stats            *session.Stats `json:"stats,omitempty"`
}

func viewOf(ls *liveSession) sessionView {
	return sessionView{
		ID:               ls.id,
		Session:          ls.ctrl.State(),
		RestRemainingSec: int(ls.timer.Remaining().Round(time.Second) / time.Second),
	}
}

// writeSessionError maps controller errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrWorkoutNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrInvalidSet),
		errors.Is(err, session.ErrSetIndex),
		errors.Is(err, session.ErrExerciseIndex),
		errors.Is(err, session.ErrEmptyWorkout):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrAlreadyStarted),
		errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrAlreadyFinished),
		errors.Is(err, session.ErrEditing),
		errors.Is(err, session.ErrExerciseIncomplete),
		errors.Is(err, session.ErrLastExercise):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type createSessionRequest struct {
	WorkoutID string `json:"workout_id"`
	Unit      string `json:"unit"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.WorkoutID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout_id is required"})
		return
	}
	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	scope := userScope{db: s.db, userID: uid}
	timer := &restTimer{now: s.now}
	ctrl := session.NewController(session.Deps{
		Catalog:     scope,
		Store:       scope,
		Recommender: s.recs.forUser(uid),
		Timer:       timer,
		Clock:       clockFunc(s.now),
		Logger:      s.log.With("user_id", uid),
		Rest:        s.opts.Rest,
		Unit:        unit,
	})
	if err := ctrl.Initialize(r.Context(), req.WorkoutID); err != nil {
		writeSessionError(w, err)
		return
	}

	now := s.now()
	ls := &liveSession{id: uuid.New(), userID: uid, ctrl: ctrl, timer: timer, touched: now}
	dropped := s.sessions.add(ls, now)
	if dropped > 0 {
		s.log.Info("dropped idle sessions", "count", dropped)
	}
	s.metrics.GaugeActiveSessions.Add(float64(1 - dropped))
	s.metrics.CounterSessions.With(prometheus.Labels{"outcome": "started"}).Inc()

	ls.mu.Lock()
	defer ls.mu.Unlock()
	writeJSON(w, http.StatusCreated, viewOf(ls))
}

// lookupSession resolves the {id} URL parameter to a session of the caller
// and locks it, writing an error response when it cannot.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return nil, false
	}
	ls, ok := s.sessions.get(id, uid)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	ls.mu.Lock()
	// A concurrent finish or cancel may have removed it while we waited.
	if _, ok := s.sessions.get(id, uid); !ok {
		ls.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return ls, true
}

// mutate runs fn on the session under its lock and writes the new view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, c *session.Controller) error) {
	ls, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	defer ls.mu.Unlock()

	ls.touched = s.now()
	if err := fn(r.Context(), ls.ctrl); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(ls))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(context.Context, *session.Controller) error { return nil })
}

type setRequest struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(_ context.Context, c *session.Controller) error {
		if err := c.CompleteSet(req.Weight, req.Reps); err != nil {
			return err
		}
		s.metrics.CounterSets.With(prometheus.Labels{"kind": "completed"}).Inc()
		return nil
	})
}

func (s *Server) handleSkipSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(_ context.Context, c *session.Controller) error {
		if err := c.SkipSet(req.Weight, req.Reps); err != nil {
			return err
		}
		s.metrics.CounterSets.With(prometheus.Labels{"kind": "skipped"}).Inc()
		return nil
	})
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return 0, false
	}
	return i, true
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(_ context.Context, c *session.Controller) error {
		return c.BeginEdit(index)
	})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req setRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(_ context.Context, c *session.Controller) error {
		return c.UpdateSet(index, req.Weight, req.Reps)
	})
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(_ context.Context, c *session.Controller) error {
		return c.CancelEdit()
	})
}

func (s *Server) handleJumpToExercise(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(ctx context.Context, c *session.Controller) error {
		return c.JumpToExercise(ctx, index)
	})
}

func (s *Server) handleNextExercise(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(ctx context.Context, c *session.Controller) error {
		return c.NextExercise(ctx)
	})
}

// handleFinishSession finishes the session, scores new personal records and
// saves the workout. A failed save keeps the session so finish can be
// retried.
func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	defer ls.mu.Unlock()
	ls.touched = s.now()

	ctx := r.Context()
	if ls.result == nil {
		res, err := ls.ctrl.Finish(ctx)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		ls.result = &res
	}
	res := *ls.result

	stored, err := s.db.GetProfile(ctx, ls.userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	var profile models.UserProfile
	if stored != nil {
		profile = *stored
	} else if len(res.Stats.Records) > 0 {
		s.log.Warn("no profile, records saved without a percentile", "user_id", ls.userID)
	}
	updates := s.updater.FromResult(profile, res)

	row, sets := storage.SessionRows(ls.id, ls.userID, res)
	if err := s.db.SaveWorkout(ctx, row, sets, updates); err != nil {
		s.log.Error("saving workout", "session", ls.id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "saving workout: " + err.Error()})
		return
	}

	engine := s.recs.forUser(ls.userID)
	for _, u := range updates {
		engine.Invalidate(u.WorkoutID)
	}
	s.metrics.CounterSessions.With(prometheus.Labels{"outcome": "finished"}).Inc()
	s.metrics.CounterPersonalRecords.Add(float64(len(updates)))
	s.metrics.HistSessionDuration.Observe(res.Stats.Duration.Seconds())
	s.metrics.GaugeActiveSessions.Dec()
	s.sessions.remove(ls.id)

	writeJSON(w, http.StatusOK, sessionView{
		ID:      ls.id,
		Session: res.State,
		Stats:   &res.Stats,
	})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	defer ls.mu.Unlock()

	if err := ls.ctrl.Cancel(); err != nil {
		writeSessionError(w, err)
		return
	}
	s.sessions.remove(ls.id)
	s.metrics.CounterSessions.With(prometheus.Labels{"outcome": "cancelled"}).Inc()
	s.metrics.GaugeActiveSessions.Dec()
	writeJSON(w, http.StatusOK, viewOf(ls))
}
