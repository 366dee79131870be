package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/standards"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	p, err := s.db.GetProfile(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile yet"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type profileRequest struct {
	BodyWeight     float64 `json:"body_weight"`
	BodyWeightUnit string  `json:"body_weight_unit"`
	Gender         string  `json:"gender"`
	Age            *int    `json:"age"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BodyWeight <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body_weight must be positive"})
		return
	}
	unit, err := models.ParseUnit(req.BodyWeightUnit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	gender, err := standards.ParseGender(req.Gender)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Age != nil && (*req.Age < 1 || *req.Age > 120) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "age must be between 1 and 120"})
		return
	}

	p := models.UserProfile{
		UserID:         uid,
		DisplayName:    userInfoFromContext(r).DisplayName,
		BodyWeight:     req.BodyWeight,
		BodyWeightUnit: unit,
		Gender:         gender,
		Age:            req.Age,
	}
	if err := s.db.UpdateProfile(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.db.ListWorkoutTemplates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.db.GetWorkoutTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if t == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout template not found"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePutTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.WorkoutTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = chi.URLParam(r, "id")
	if t.Name == "" || len(t.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and at least one exercise are required"})
		return
	}
	if err := s.db.UpsertWorkoutTemplate(r.Context(), t); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleQueryProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	featured := r.URL.Query().Get("featured") == "true"
	entries, err := s.db.QueryProgress(r.Context(), uid, featured)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type recordLiftRequest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Unit     string  `json:"unit"`
	Reps     int     `json:"reps"`
}

// handleRecordLift ranks a single attempt logged outside a session and
// stores it when it beats the current record.
func (s *Server) handleRecordLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req recordLiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	attempt := models.LiftAttempt{Weight: req.Weight, Unit: unit, Reps: req.Reps}
	if req.Exercise == "" || !attempt.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise, a positive weight and reps >= 1 are required"})
		return
	}

	profile, err := s.db.GetProfile(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "set a profile before recording lifts"})
		return
	}

	entry := s.updater.Score(*profile, standards.Normalize(req.Exercise), attempt.EstimatedMax())
	written, err := s.db.UpsertProgress(r.Context(), uid, []models.UserProgress{entry})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if written > 0 {
		s.recs.forUser(uid).Invalidate(entry.WorkoutID)
		s.metrics.CounterPersonalRecords.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress":        entry,
		"personal_record": written > 0,
	})
}

func (s *Server) handleSetFeatured(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req struct {
		Featured bool `json:"featured"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	exercise := chi.URLParam(r, "exercise")
	err := s.db.SetFeatured(r.Context(), uid, exercise, req.Featured)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no progress for " + exercise})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise": exercise, "featured": req.Featured})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), workoutID, uid)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	stats, err := s.db.GetDataStats(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if r.URL.Query().Get("start") == "" {
		start = end.AddDate(0, -6, 0)
	}

	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		bucket = "1 month"
	}
	periods, err := s.db.GetVolumeSummary(r.Context(), start, end, bucket, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 30 days
		end = time.Now()
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
