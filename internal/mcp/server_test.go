package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftrank/internal/calc"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 7 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 { // ~168 hours = 7 days
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

type memSource struct {
	profile  *models.UserProfile
	progress []models.UserProgress
}

func (m *memSource) GetProfile(context.Context, int) (*models.UserProfile, error) {
	return m.profile, nil
}

func (m *memSource) QueryProgress(_ context.Context, _ int, featuredOnly bool) ([]models.UserProgress, error) {
	var out []models.UserProgress
	for _, p := range m.progress {
		if !featuredOnly || p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memSource) ListWorkoutTemplates(context.Context) ([]models.WorkoutTemplate, error) {
	return models.DefaultTemplates(), nil
}

func (m *memSource) GetWorkoutTemplate(_ context.Context, id string) (*models.WorkoutTemplate, error) {
	for _, t := range models.DefaultTemplates() {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memSource) QueryWorkouts(context.Context, time.Time, time.Time, int) ([]models.WorkoutRow, error) {
	return nil, nil
}

func (m *memSource) GetWorkout(context.Context, uuid.UUID, int) (*storage.WorkoutDetail, error) {
	return nil, storage.ErrNotFound
}

func (m *memSource) GetDataStats(context.Context, int) (*storage.DataStats, error) {
	return &storage.DataStats{}, nil
}

func (m *memSource) GetVolumeSummary(context.Context, time.Time, time.Time, string, int) ([]storage.VolumeSummaryPeriod, error) {
	return nil, nil
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func newHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, engine: percentile.NewDefault(), log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// TestEstimateOneRMTool verifies the calculator tool and its validation.
func TestEstimateOneRMTool(t *testing.T) {
	h := newHandlers(&memSource{})

	res, err := h.estimateOneRM(context.Background(), callTool(map[string]any{"weight": 225.0, "reps": 5.0}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var got calc.OneRMResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.EstimatedMax != 260 {
		t.Errorf("estimated_max = %v, want 260", got.EstimatedMax)
	}

	res, _ = h.estimateOneRM(context.Background(), callTool(map[string]any{"weight": 225.0, "reps": 0.0}))
	if !res.IsError {
		t.Error("expected error for zero reps")
	}
}

// TestRankLiftTool verifies rankings use the stored profile and require a
// body weight when none exists.
func TestRankLiftTool(t *testing.T) {
	ds := &memSource{}
	h := newHandlers(ds)
	args := map[string]any{"exercise": "squat", "weight": 225.0}

	res, _ := h.rankLift(context.Background(), callTool(args))
	if !res.IsError {
		t.Error("expected error without profile or body_weight")
	}

	ds.profile = &models.UserProfile{BodyWeight: 180, BodyWeightUnit: models.Pounds, Gender: standards.Male}
	res, _ = h.rankLift(context.Background(), callTool(args))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var got calc.RankResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Percentile != 25 || got.Tier != "C-" {
		t.Errorf("rank = %+v, want percentile 25 tier C-", got)
	}
}

// TestGetTierTool verifies range validation.
func TestGetTierTool(t *testing.T) {
	h := newHandlers(&memSource{})
	res, _ := h.getTier(context.Background(), callTool(map[string]any{"percentile": 150.0}))
	if !res.IsError {
		t.Error("expected error for percentile above 100")
	}
	res, _ = h.getTier(context.Background(), callTool(map[string]any{"percentile": 99.5}))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
}

// TestGetProgressToolFeatured verifies the featured flag filters records.
func TestGetProgressToolFeatured(t *testing.T) {
	h := newHandlers(&memSource{progress: []models.UserProgress{
		{WorkoutID: "squat", Featured: true},
		{WorkoutID: "dip"},
	}})

	res, _ := h.getProgress(context.Background(), callTool(map[string]any{"featured": true}))
	var got []models.UserProgress
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].WorkoutID != "squat" {
		t.Errorf("progress = %+v", got)
	}
}

// TestWorkoutTools verifies not-found handling for templates and workouts.
func TestWorkoutTools(t *testing.T) {
	h := newHandlers(&memSource{})

	res, _ := h.getTemplate(context.Background(), callTool(map[string]any{"id": "nope"}))
	if !res.IsError {
		t.Error("expected error for unknown template")
	}
	res, _ = h.getWorkout(context.Background(), callTool(map[string]any{"id": "not-a-uuid"}))
	if !res.IsError {
		t.Error("expected error for invalid workout ID")
	}
	res, _ = h.getWorkout(context.Background(), callTool(map[string]any{"id": uuid.NewString()}))
	if !res.IsError || resultText(t, res) != "workout not found" {
		t.Error("expected workout not found")
	}
}
