package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/claude/liftrank/internal/calc"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/strength/onerm"
	"github.com/claude/liftrank/internal/strength/standards"
)

// attemptFromQuery reads weight, reps and unit query parameters.
func attemptFromQuery(r *http.Request) (models.LiftAttempt, error) {
	q := r.URL.Query()
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		return models.LiftAttempt{}, fmt.Errorf("invalid weight %q", q.Get("weight"))
	}
	reps := 1
	if v := q.Get("reps"); v != "" {
		if reps, err = strconv.Atoi(v); err != nil {
			return models.LiftAttempt{}, fmt.Errorf("invalid reps %q", v)
		}
	}
	unit, err := models.ParseUnit(q.Get("unit"))
	if err != nil {
		return models.LiftAttempt{}, err
	}
	return models.LiftAttempt{Weight: weight, Unit: unit, Reps: reps}, nil
}

func (s *Server) countCalculation(kind string) {
	s.metrics.CounterCalculations.With(prometheus.Labels{"kind": kind}).Inc()
}

func (s *Server) handleOneRM(w http.ResponseWriter, r *http.Request) {
	attempt, err := attemptFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := calc.OneRM(attempt)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.countCalculation("onerm")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTier(w http.ResponseWriter, r *http.Request) {
	p, err := strconv.ParseFloat(r.URL.Query().Get("percentile"), 64)
	if err != nil || p < 0 || p > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "percentile must be a number between 0 and 100"})
		return
	}
	s.countCalculation("tier")
	writeJSON(w, http.StatusOK, calc.Tier(p))
}

// handlePercentile ranks an attempt. Body weight, gender and age default to
// the caller's stored profile.
func (s *Server) handlePercentile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exercise := q.Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	attempt, err := attemptFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var profile models.UserProfile
	if stored, err := s.db.GetProfile(r.Context(), userIDFromContext(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	} else if stored != nil {
		profile = *stored
	}
	if err := profileOverrides(r, &profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := calc.Rank(s.engine, profile, standards.Normalize(exercise), attempt)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.countCalculation("percentile")
	writeJSON(w, http.StatusOK, res)
}

func profileOverrides(r *http.Request, p *models.UserProfile) error {
	q := r.URL.Query()
	if v := q.Get("body_weight"); v != "" {
		bw, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid body_weight %q", v)
		}
		unit, err := models.ParseUnit(q.Get("body_weight_unit"))
		if err != nil {
			return err
		}
		p.BodyWeight, p.BodyWeightUnit = bw, unit
	}
	if v := q.Get("gender"); v != "" {
		g, err := standards.ParseGender(v)
		if err != nil {
			return err
		}
		p.Gender = g
	}
	if v := q.Get("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid age %q", v)
		}
		p.Age = &age
	}
	return nil
}

type recommendationResponse struct {
	Exercise       string      `json:"exercise"`
	Reps           int         `json:"reps"`
	PersonalRecord float64     `json:"personal_record"`
	Weight         float64     `json:"weight"`
	Unit           models.Unit `json:"unit"`
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	exercise := standards.Normalize(chi.URLParam(r, "exercise"))
	reps, err := strconv.Atoi(r.URL.Query().Get("reps"))
	if err != nil || reps < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be a positive integer"})
		return
	}
	unit, err := models.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	engine := s.recs.forUser(uid)
	pr, err := engine.PersonalRecord(r.Context(), exercise)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	increment := s.opts.Recommend.Increment
	if increment <= 0 {
		increment = recommend.DefaultIncrement
	}
	weight := recommend.Weight(pr, reps, increment)
	if unit == models.Kilograms && weight > 0 {
		pr = unit.FromPounds(pr)
		weight = onerm.RoundToIncrement(unit.FromPounds(weight), 2.5)
	}

	s.countCalculation("recommendation")
	writeJSON(w, http.StatusOK, recommendationResponse{
		Exercise:       exercise,
		Reps:           reps,
		PersonalRecord: pr,
		Weight:         weight,
		Unit:           unit,
	})
}
