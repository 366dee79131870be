package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
)

// HTTPClient implements DataSource by calling the LiftRank REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// statusError is a non-200 API response.
type statusError struct {
	path string
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("httpclient: %s returned %d: %s", e.path, e.code, e.body)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{path: path, code: resp.StatusCode, body: body}
	}

	return body, nil
}

// getJSON fetches path and decodes the response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, what string, v any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", what, err)
	}
	return nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// GetProfile returns nil when the server has no profile for the caller.
func (c *HTTPClient) GetProfile(ctx context.Context, _ int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := c.getJSON(ctx, "/api/v1/profile", nil, "profile", &p)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) QueryProgress(ctx context.Context, _ int, featuredOnly bool) ([]models.UserProgress, error) {
	var params url.Values
	if featuredOnly {
		params = url.Values{"featured": {"true"}}
	}
	var entries []models.UserProgress
	if err := c.getJSON(ctx, "/api/v1/progress", params, "progress", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) ListWorkoutTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	var templates []models.WorkoutTemplate
	if err := c.getJSON(ctx, "/api/v1/templates", nil, "templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (c *HTTPClient) GetWorkoutTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	err := c.getJSON(ctx, "/api/v1/templates/"+url.PathEscape(id), nil, "template", &t)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time, _ int) ([]models.WorkoutRow, error) {
	var workouts []models.WorkoutRow
	if err := c.getJSON(ctx, "/api/v1/workouts", timeParams(start, end), "workouts", &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, workoutID uuid.UUID, _ int) (*storage.WorkoutDetail, error) {
	var detail storage.WorkoutDetail
	err := c.getJSON(ctx, "/api/v1/workouts/"+workoutID.String(), nil, "workout", &detail)
	if isNotFound(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	var stats storage.DataStats
	if err := c.getJSON(ctx, "/api/v1/stats", nil, "stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, _ int) ([]storage.VolumeSummaryPeriod, error) {
	params := timeParams(start, end)
	params.Set("bucket", bucket)

	var periods []storage.VolumeSummaryPeriod
	if err := c.getJSON(ctx, "/api/v1/training/summary", params, "training summary", &periods); err != nil {
		return nil, err
	}
	return periods, nil
}
