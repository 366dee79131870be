package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/ingest"
	"github.com/claude/liftrank/internal/metrics"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/progress"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

// Store is the persistence the server needs. *storage.DB satisfies it.
type Store interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, p models.UserProfile) error

	GetTopLift(ctx context.Context, userID int, workoutID string) (*models.UserProgress, error)
	QueryProgress(ctx context.Context, userID int, featuredOnly bool) ([]models.UserProgress, error)
	UpsertProgress(ctx context.Context, userID int, updates []models.UserProgress) (int64, error)
	SetFeatured(ctx context.Context, userID int, workoutID string, featured bool) error

	GetWorkoutTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error)
	ListWorkoutTemplates(ctx context.Context) ([]models.WorkoutTemplate, error)
	UpsertWorkoutTemplate(ctx context.Context, t models.WorkoutTemplate) error

	SaveWorkout(ctx context.Context, row models.WorkoutRow, sets []models.WorkoutSetRow, updates []models.UserProgress) error
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*storage.WorkoutDetail, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.VolumeSummaryPeriod, error)
}

var _ Store = (*storage.DB)(nil)

// Options configures a Server.
type Options struct {
	// APIKey guards catalog writes.
	APIKey string
	// LocalUser is the login requests run as without Tailscale. Empty
	// attributes every request to user 1.
	LocalUser string
	// Rest is the rest period started after each completed set.
	Rest      time.Duration
	Recommend recommend.Options
	// MetricsHandler is served at /metrics, MCPHandler at /mcp.
	MetricsHandler http.Handler
	MCPHandler     http.Handler
	// Aliases resolve imported exercise names. Nil uses the built-in ones.
	Aliases standards.Resolver
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	engine   *percentile.Engine
	updater  *progress.Updater
	importer *ingest.Importer
	metrics  *metrics.Manager
	sessions *registry
	recs     *recommenders
	ident    *identity
	opts     Options
	log      *slog.Logger
	router   chi.Router
	now      func() time.Time
}

// New creates a new Server with all routes configured. A nil engine uses
// the built-in strength standards.
func New(db Store, engine *percentile.Engine, m *metrics.Manager, opts Options, log *slog.Logger) *Server {
	if engine == nil {
		engine = percentile.NewDefault()
	}
	s := &Server{
		db:       db,
		engine:   engine,
		updater:  progress.NewUpdater(engine),
		metrics:  m,
		sessions: newRegistry(),
		recs:     newRecommenders(db, opts.Recommend, log),
		ident:    &identity{db: db, localUser: opts.LocalUser, ids: make(map[string]int)},
		opts:     opts,
		log:      log,
		router:   chi.NewRouter(),
		now:      time.Now,
	}
	s.importer = ingest.New(s.updater, opts.Aliases, log)
	m.RegisterCacheStats(s.recs.cacheStats)
	s.routes()
	return s
}

// SetTailscale makes the server identify callers by their tailnet login.
func (s *Server) SetTailscale(w WhoIser) {
	s.ident.whois = w
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RequestUserID returns the user the identity middleware resolved for r.
func RequestUserID(r *http.Request) int {
	return userIDFromContext(r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS)

	if s.opts.MetricsHandler != nil {
		s.router.Handle("/metrics", s.opts.MetricsHandler)
	}

	// Calculators need no identity.
	s.router.Get("/api/v1/calc/onerm", s.handleOneRM)
	s.router.Get("/api/v1/calc/tier", s.handleTier)

	s.router.Group(func(r chi.Router) {
		r.Use(s.identify)

		if s.opts.MCPHandler != nil {
			r.Handle("/mcp", s.opts.MCPHandler)
		}

		r.Get("/api/v1/me", s.handleMe)
		r.Get("/api/v1/profile", s.handleGetProfile)
		r.Put("/api/v1/profile", s.handleUpdateProfile)

		r.Get("/api/v1/calc/percentile", s.handlePercentile)
		r.Get("/api/v1/recommendations/{exercise}", s.handleRecommendation)

		r.Get("/api/v1/templates", s.handleListTemplates)
		r.Get("/api/v1/templates/{id}", s.handleGetTemplate)
		r.With(APIKeyAuth(s.opts.APIKey)).Put("/api/v1/templates/{id}", s.handlePutTemplate)

		r.Get("/api/v1/progress", s.handleQueryProgress)
		r.Post("/api/v1/progress", s.handleRecordLift)
		r.Put("/api/v1/progress/{exercise}/featured", s.handleSetFeatured)

		r.Route("/api/v1/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleCancelSession)
				r.Post("/sets", s.handleCompleteSet)
				r.Post("/sets/skip", s.handleSkipSet)
				r.Post("/sets/{index}/edit", s.handleBeginEdit)
				r.Put("/sets/{index}", s.handleUpdateSet)
				r.Delete("/edit", s.handleCancelEdit)
				r.Post("/exercises/{index}", s.handleJumpToExercise)
				r.Post("/next", s.handleNextExercise)
				r.Post("/finish", s.handleFinishSession)
			})
		})

		r.Post("/api/v1/import/alpha", s.handleImportAlpha)

		r.Get("/api/v1/workouts", s.handleQueryWorkouts)
		r.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
		r.Get("/api/v1/stats", s.handleStats)
		r.Get("/api/v1/training/summary", s.handleTrainingSummary)
	})
}

// identify attaches the caller's identity. Without Tailscale and without a
// configured local user every request runs as the dev user.
func (s *Server) identify(next http.Handler) http.Handler {
	resolved := s.ident.middleware(next)
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ident.whois == nil && s.ident.localUser == "" {
			dev.ServeHTTP(w, r)
			return
		}
		resolved.ServeHTTP(w, r)
	})
}
