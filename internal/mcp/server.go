package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftrank/internal/strength/percentile"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered. A nil
// engine uses the built-in strength standards.
func New(ds DataSource, engine *percentile.Engine, version string, log *slog.Logger) *server.MCPServer {
	if engine == nil {
		engine = percentile.NewDefault()
	}
	s := server.NewMCPServer("LiftRank", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftRank strength training server. Estimate one-rep maxes, rank lifts against strength standards, and review personal records and finished workouts. All data is scoped to the authenticated user; weights are in pounds unless a unit is given."),
	)

	h := &handlers{ds: ds, engine: engine, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolEstimateOneRM, Handler: h.estimateOneRM},
		server.ServerTool{Tool: toolRankLift, Handler: h.rankLift},
		server.ServerTool{Tool: toolGetTier, Handler: h.getTier},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
		server.ServerTool{Tool: toolGetTemplate, Handler: h.getTemplate},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resStrengthProfile, Handler: h.strengthProfile},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resWorkoutCatalog, Handler: h.workoutCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	engine *percentile.Engine
	log    *slog.Logger
}

// --- Resource definitions ---

var resStrengthProfile = mcp.NewResource(
	"liftrank://strength_profile",
	"Strength Profile",
	mcp.WithResourceDescription("Body weight, gender and age plus every personal record with its percentile and tier"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftrank://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts finished in the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resWorkoutCatalog = mcp.NewResource(
	"liftrank://workout_catalog",
	"Workout Catalog",
	mcp.WithResourceDescription("All workout templates with their exercises, target sets and reps"),
	mcp.WithMIMEType("application/json"),
)
