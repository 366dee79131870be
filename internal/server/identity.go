package server

import (
	"context"
	"net/http"
	"sync"

	"tailscale.com/client/tailscale/apitype"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo identifies the person behind a request.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

var devUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// WhoIser resolves a tailnet peer address to its owner. *local.Client from
// tsnet satisfies it.
type WhoIser interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// DevIdentity attributes every request to user 1.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userIDKey, 1)
		ctx = context.WithValue(ctx, userInfoKey, devUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the request's user, falling back to 1.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return devUser
}

// mustUserID returns the user set by the identity middleware, or writes a
// 401 when there is none.
func mustUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := r.Context().Value(userIDKey).(int)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no user identity"})
		return 0, false
	}
	return id, true
}

// identity resolves the caller to a user row. With Tailscale the login of
// the tailnet peer is used; otherwise every request runs as the configured
// local user. Resolved logins are cached for the server's lifetime.
type identity struct {
	db        Store
	whois     WhoIser
	localUser string

	mu  sync.RWMutex
	ids map[string]int
}

func (id *identity) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := UserInfo{Login: id.localUser, DisplayName: id.localUser}
		if id.whois != nil {
			who, err := id.whois.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil || who == nil || who.UserProfile == nil {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "unknown tailnet peer"})
				return
			}
			info = UserInfo{Login: who.UserProfile.LoginName, DisplayName: who.UserProfile.DisplayName}
		}

		uid, err := id.resolve(r.Context(), info)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		ctx = context.WithValue(ctx, userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (id *identity) resolve(ctx context.Context, info UserInfo) (int, error) {
	id.mu.RLock()
	uid, ok := id.ids[info.Login]
	id.mu.RUnlock()
	if ok {
		return uid, nil
	}

	uid, err := id.db.GetOrCreateUser(ctx, info.Login, info.DisplayName)
	if err != nil {
		return 0, err
	}
	id.mu.Lock()
	id.ids[info.Login] = uid
	id.mu.Unlock()
	return uid, nil
}
