package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftrank/internal/calc"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/standards"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	return timeRange(startStr, endStr, 7)
}

// timeRange parses start/end; a missing start is days before end.
func timeRange(startStr, endStr string, days int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool definitions ---

var toolEstimateOneRM = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimate a one-rep max from a set of weight × reps. Returns the estimate, the individual formulas, and the weight to use for 1 to 12 reps."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed (1 or more)")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to lbs."), mcp.Enum("lbs", "kg")),
)

var toolRankLift = mcp.NewTool("rank_lift",
	mcp.WithDescription("Rank a lift against strength standards. Returns the estimated 1RM, population percentile, and tier (E- through S++). Body weight, gender and age default to the stored profile."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name or ID (e.g. 'squat', 'bench press', 'deadlift')")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Description("Repetitions performed. Defaults to 1.")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to lbs."), mcp.Enum("lbs", "kg")),
	mcp.WithNumber("body_weight", mcp.Description("Lifter body weight. Overrides the profile.")),
	mcp.WithString("body_weight_unit", mcp.Description("Body weight unit. Defaults to lbs."), mcp.Enum("lbs", "kg")),
	mcp.WithString("gender", mcp.Description("Lifter gender. Overrides the profile."), mcp.Enum("male", "female")),
	mcp.WithNumber("age", mcp.Description("Lifter age. Overrides the profile.")),
)

var toolGetTier = mcp.NewTool("get_strength_tier",
	mcp.WithDescription("Map a percentile (0-100) to its strength tier, color, and the percentile needed for the next tier."),
	mcp.WithNumber("percentile", mcp.Required(), mcp.Description("Percentile between 0 and 100")),
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Return the lifter profile used for rankings: body weight, unit, gender and age."),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("List personal records per exercise with estimated 1RM in lbs, percentile, tier, and when each was set."),
	mcp.WithBoolean("featured", mcp.Description("Only return lifts featured on the dashboard")),
)

var toolListTemplates = mcp.NewTool("list_workout_templates",
	mcp.WithDescription("List the workout templates a session can be started from."),
)

var toolGetTemplate = mcp.NewTool("get_workout_template",
	mcp.WithDescription("Get one workout template with its exercises, target sets and target reps."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Template ID (e.g. 'full-body-a')")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query finished workouts. Returns title, timing, duration, set count, volume, and number of new personal records."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one finished workout with every logged set, including skipped sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID) as returned by get_workouts")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Weekly or monthly training volume: sessions, working sets, reps, tonnage and average sets per session."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 week", "1 month")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Overall totals: workouts, sets, skipped sets, volume, ranked lifts, first and last workout, and counts per workout title."),
)

// --- Tool handlers ---

func (h *handlers) estimateOneRM(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	unit, err := models.ParseUnit(req.GetString("unit", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := calc.OneRM(models.LiftAttempt{Weight: weight, Unit: unit, Reps: int(reps)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (h *handlers) rankLift(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	unit, err := models.ParseUnit(req.GetString("unit", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attempt := models.LiftAttempt{Weight: weight, Unit: unit, Reps: int(req.GetFloat("reps", 1))}

	var profile models.UserProfile
	stored, err := h.ds.GetProfile(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp rank_lift", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if stored != nil {
		profile = *stored
	}
	if bw := req.GetFloat("body_weight", 0); bw > 0 {
		bwUnit, err := models.ParseUnit(req.GetString("body_weight_unit", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		profile.BodyWeight, profile.BodyWeightUnit = bw, bwUnit
	}
	if g := req.GetString("gender", ""); g != "" {
		gender, err := standards.ParseGender(g)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		profile.Gender = gender
	}
	if age := int(req.GetFloat("age", 0)); age > 0 {
		profile.Age = &age
	}
	if profile.BodyWeight <= 0 {
		return mcp.NewToolResultError("no stored profile: pass body_weight"), nil
	}

	res, err := calc.Rank(h.engine, profile, standards.Normalize(exercise), attempt)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (h *handlers) getTier(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireFloat("percentile")
	if err != nil || p < 0 || p > 100 {
		return mcp.NewToolResultError("percentile must be a number between 0 and 100"), nil
	}
	return jsonResult(calc.Tier(p))
}

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := h.ds.GetProfile(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if p == nil {
		return mcp.NewToolResultError("no profile has been set"), nil
	}
	return jsonResult(p)
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.ds.QueryProgress(ctx, UserIDFromContext(ctx), req.GetBool("featured", false))
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(entries)
}

func (h *handlers) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.ds.ListWorkoutTemplates(ctx)
	if err != nil {
		h.log.Error("mcp list_workout_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(templates)
}

func (h *handlers) getTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	t, err := h.ds.GetWorkoutTemplate(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout_template", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if t == nil {
		return mcp.NewToolResultError("workout template " + id + " not found"), nil
	}
	return jsonResult(t)
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(workouts)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	detail, err := h.ds.GetWorkout(ctx, id, UserIDFromContext(ctx))
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("workout not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(detail)
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""), 182)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	bucket := req.GetString("bucket", "1 month")
	periods, err := h.ds.GetVolumeSummary(ctx, start, end, bucket, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(periods)
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}
