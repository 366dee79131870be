package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/ingest"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
	"github.com/claude/liftrank/internal/storage"
)

const maxImportBytes = 32 << 20

// userSink stores imported workouts for one user. Import IDs are derived
// per user since workout IDs are unique across users.
type userSink struct {
	db  Store
	uid int
}

func (u userSink) scoped(id uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(id, []byte(strconv.Itoa(u.uid)))
}

var _ ingest.Sink = userSink{}

func (u userSink) PersonalRecord(ctx context.Context, exercise string) (float64, error) {
	p, err := u.db.GetTopLift(ctx, u.uid, exercise)
	if err != nil || p == nil {
		return 0, err
	}
	return p.PersonalRecord, nil
}

func (u userSink) WorkoutExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := u.db.GetWorkout(ctx, u.scoped(id), u.uid)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (u userSink) SaveImported(ctx context.Context, id uuid.UUID, res session.Result, updates []models.UserProgress) error {
	row, sets := storage.SessionRows(u.scoped(id), u.uid, res)
	return u.db.SaveWorkout(ctx, row, sets, updates)
}

// handleImportAlpha imports an Alpha Progression CSV export sent as the
// request body.
func (s *Server) handleImportAlpha(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	profile, err := s.db.GetProfile(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if profile == nil {
		profile = &models.UserProfile{UserID: uid}
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	res, err := s.importer.Alpha(r.Context(), body, userSink{db: s.db, uid: uid}, *profile)
	if err != nil {
		s.log.Error("alpha import failed", "user_id", uid, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	recs := s.recs.forUser(uid)
	for _, id := range res.Updated {
		recs.Invalidate(id)
	}
	s.metrics.CounterPersonalRecords.Add(float64(res.Records))
	writeJSON(w, http.StatusOK, res)
}
