package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/strength/standards"
)

// asUser attaches the identity the identify middleware would resolve.
func asUser(req *http.Request, uid int, info UserInfo) *http.Request {
	ctx := context.WithValue(req.Context(), userIDKey, uid)
	ctx = context.WithValue(ctx, userInfoKey, info)
	return req.WithContext(ctx)
}

// TestHandleMeLocalUser verifies /api/v1/me reports the configured local
// lifter when no Tailscale peer is involved.
func TestHandleMeLocalUser(t *testing.T) {
	s := newTestServer(newMemStore(), Options{})
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil), 3, UserInfo{Login: "lifter", DisplayName: "lifter"})
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "lifter" {
		t.Errorf("login = %q, want %q", info.Login, "lifter")
	}
}

// TestHandleProfileWithoutIdentity verifies profile handlers refuse requests
// that bypassed the identity middleware.
func TestHandleProfileWithoutIdentity(t *testing.T) {
	s := newTestServer(newMemStore(), Options{})
	rec := httptest.NewRecorder()
	s.handleGetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestHandleUpdateProfile verifies the profile is stored for the resolved
// user with the caller's display name, and that bad input is rejected.
func TestHandleUpdateProfile(t *testing.T) {
	db := newMemStore()
	s := newTestServer(db, Options{})
	alice := UserInfo{Login: "alice@example.com", DisplayName: "Alice"}

	rec := httptest.NewRecorder()
	s.handleGetProfile(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil), 7, alice))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing profile status = %d, want 404", rec.Code)
	}

	body := `{"body_weight": 82.5, "body_weight_unit": "kg", "gender": "female", "age": 34}`
	rec = httptest.NewRecorder()
	s.handleUpdateProfile(rec, asUser(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body)), 7, alice))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	p, _ := db.GetProfile(context.Background(), 7)
	if p == nil {
		t.Fatal("profile not stored for user 7")
	}
	if p.DisplayName != "Alice" || p.BodyWeightUnit != models.Kilograms || p.Gender != standards.Female {
		t.Errorf("profile = %+v", p)
	}
	if p.Age == nil || *p.Age != 34 {
		t.Errorf("age = %v, want 34", p.Age)
	}

	for _, bad := range []string{
		`{"body_weight": 0}`,
		`{"body_weight": 80, "body_weight_unit": "stone", "gender": "male"}`,
		`{"body_weight": 80, "gender": "nonbinary"}`,
		`{"body_weight": 80, "gender": "male", "age": 150}`,
	} {
		rec = httptest.NewRecorder()
		s.handleUpdateProfile(rec, asUser(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(bad)), 7, alice))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", bad, rec.Code)
		}
	}
}
