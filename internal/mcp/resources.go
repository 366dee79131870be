package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) strengthProfile(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	profile, err := h.ds.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	records, err := h.ds.QueryProgress(ctx, uid, false)
	if err != nil {
		h.log.Warn("strength_profile: progress query failed", "error", err)
	}

	return jsonContents(req.Params.URI, map[string]any{
		"profile":          profile,
		"personal_records": records,
	})
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, workouts)
}

func (h *handlers) workoutCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	templates, err := h.ds.ListWorkoutTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, templates)
}
