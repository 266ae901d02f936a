package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pathshare/pathshare/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.Handler) *SupabaseStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSupabaseStore(&config.SessionConfig{
		URL:           server.URL,
		AnonKey:       "anon-key",
		OAuthRedirect: "http://localhost:3000",
	})
}

func TestSignInWithPassword(t *testing.T) {
	var gotPayload map[string]any
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok",
			"refresh_token": "rtok",
			"user": map[string]any{
				"id":    "u-1",
				"email": "jane@example.com",
				"user_metadata": map[string]any{
					"full_name": "Jane",
				},
			},
		})
	}))

	var events []AuthEvent
	unsubscribe := store.SubscribeAuthChanges(func(event AuthEvent, s *Session) {
		events = append(events, event)
		require.NotNil(t, s)
		assert.Equal(t, "u-1", s.UserID)
		assert.Equal(t, "Jane", s.FullName)
	})
	defer unsubscribe()

	require.NoError(t, store.SignInWithPassword(context.Background(), "jane@example.com", "pw"))

	assert.Equal(t, "jane@example.com", gotPayload["email"])
	assert.Equal(t, []AuthEvent{EventSignedIn}, events)

	current, err := store.GetCurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "tok", current.AccessToken)
}

func TestSignInFailureIsAuthError(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_description": "Invalid login credentials",
		})
	}))

	err := store.SignInWithPassword(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.Status)
	assert.Equal(t, "Invalid login credentials", authErr.Message)

	current, _ := store.GetCurrentSession(context.Background())
	assert.Nil(t, current)
}

func TestSignUpSendsFullNameMetadata(t *testing.T) {
	var gotPayload map[string]any
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	require.NoError(t, store.SignUp(context.Background(), "jane@example.com", "pw", "Jane Doe"))

	data, ok := gotPayload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", data["full_name"])

	// Sign-up never creates a session; that waits for email confirmation.
	current, _ := store.GetCurrentSession(context.Background())
	assert.Nil(t, current)
}

func TestSignOutPublishesAbsentSession(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	store.setSession(&Session{AccessToken: "tok", UserID: "u-1"})

	var gotEvent AuthEvent
	var gotNil bool
	unsubscribe := store.SubscribeAuthChanges(func(event AuthEvent, s *Session) {
		gotEvent = event
		gotNil = s == nil
	})
	defer unsubscribe()

	require.NoError(t, store.SignOut(context.Background()))
	assert.Equal(t, EventSignedOut, gotEvent)
	assert.True(t, gotNil)

	current, _ := store.GetCurrentSession(context.Background())
	assert.Nil(t, current)
}

func TestGetProfileRow(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		want    Row
	}{
		{
			name:   "row present",
			status: http.StatusOK,
			body:   `{"id":"u-1","name":"Jane","points":120}`,
			want:   Row{"id": "u-1", "name": "Jane", "points": float64(120)},
		},
		{
			name:    "zero rows maps to not found",
			status:  http.StatusNotAcceptable,
			body:    `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`,
			wantErr: ErrProfileNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
				assert.Equal(t, "eq.u-1", r.URL.Query().Get("id"))
				assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			row, err := store.GetProfileRow(context.Background(), "u-1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, row)
		})
	}
}

func TestUpsertProfileRow(t *testing.T) {
	var gotPrefer string
	var gotRow Row
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRow))
		w.WriteHeader(http.StatusCreated)
	}))

	err := store.UpsertProfileRow(context.Background(), Row{"id": "u-1", "name": "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", gotPrefer)
	assert.Equal(t, "Jane", gotRow["name"])
}

func TestOAuthSignInURL(t *testing.T) {
	store := NewSupabaseStore(&config.SessionConfig{
		URL:           "https://project.supabase.co",
		AnonKey:       "anon-key",
		OAuthRedirect: "http://127.0.0.1:0/callback",
	})
	t.Cleanup(store.stopOAuthCallback)

	got, err := store.OAuthSignInURL("google")
	require.NoError(t, err)
	assert.Contains(t, got, "https://project.supabase.co/auth/v1/authorize")
	assert.Contains(t, got, "provider=google")
	assert.Contains(t, got, "redirect_to=http%3A%2F%2F127.0.0.1%3A0%2Fcallback")

	_, err = store.OAuthSignInURL("")
	assert.Error(t, err)
}

func TestSessionRestoredAcrossRestarts(t *testing.T) {
	tokenPayload := map[string]any{
		"access_token":  "tok-2",
		"refresh_token": "rtok-2",
		"user": map[string]any{
			"id":    "u-1",
			"email": "jane@example.com",
		},
	}

	var grants []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		grants = append(grants, r.URL.Query().Get("grant_type"))
		_ = json.NewEncoder(w).Encode(tokenPayload)
	}))
	t.Cleanup(server.Close)

	cfg := &config.SessionConfig{
		URL:       server.URL,
		AnonKey:   "anon-key",
		TokenFile: filepath.Join(t.TempDir(), "session.yaml"),
	}

	first := NewSupabaseStore(cfg)
	require.NoError(t, first.SignInWithPassword(context.Background(), "jane@example.com", "pw"))

	// A fresh store, as after a process restart, picks the session back up
	// through the refresh grant.
	second := NewSupabaseStore(cfg)
	restored, err := second.GetCurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "u-1", restored.UserID)
	assert.Equal(t, "tok-2", restored.AccessToken)
	assert.Equal(t, []string{"password", "refresh_token"}, grants)
}

func TestSignOutClearsStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok",
			"refresh_token": "rtok",
			"user":          map[string]any{"id": "u-1"},
		})
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "session.yaml")
	cfg := &config.SessionConfig{URL: server.URL, AnonKey: "anon-key", TokenFile: path}

	store := NewSupabaseStore(cfg)
	require.NoError(t, store.SignInWithPassword(context.Background(), "jane@example.com", "pw"))
	require.NoError(t, store.SignOut(context.Background()))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	next := NewSupabaseStore(cfg)
	restored, err := next.GetCurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestStaleRefreshTokenDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error_description": "Invalid Refresh Token"})
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, tokenFile{path: path}.Save("stale"))

	store := NewSupabaseStore(&config.SessionConfig{URL: server.URL, AnonKey: "anon-key", TokenFile: path})
	restored, err := store.GetCurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)

	// The stale token is gone, so the next start skips the round trip.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOAuthCallbackCompletesSignIn(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok",
			"refresh_token": "rtok",
			"user": map[string]any{
				"id":    "u-1",
				"email": "jane@example.com",
			},
		})
	}))
	t.Cleanup(backend.Close)

	store := NewSupabaseStore(&config.SessionConfig{URL: backend.URL, AnonKey: "anon-key"})

	var events []AuthEvent
	unsubscribe := store.SubscribeAuthChanges(func(event AuthEvent, s *Session) {
		events = append(events, event)
		require.NotNil(t, s)
		assert.Equal(t, "u-1", s.UserID)
	})
	defer unsubscribe()

	// First hit has the tokens in the fragment; the page bounces them into
	// query parameters.
	rec := httptest.NewRecorder()
	store.handleOAuthCallback(rec, httptest.NewRequest(http.MethodGet, "/callback", nil))
	assert.Contains(t, rec.Body.String(), "window.location.hash")
	assert.Empty(t, events)

	rec = httptest.NewRecorder()
	store.handleOAuthCallback(rec, httptest.NewRequest(http.MethodGet, "/callback?refresh_token=rtok-from-redirect", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []AuthEvent{EventSignedIn}, events)

	current, err := store.GetCurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "u-1", current.UserID)
}

func TestOAuthCallbackExchangeFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error_description": "Invalid Refresh Token"})
	}))
	t.Cleanup(backend.Close)

	store := NewSupabaseStore(&config.SessionConfig{URL: backend.URL, AnonKey: "anon-key"})

	fired := false
	unsubscribe := store.SubscribeAuthChanges(func(event AuthEvent, s *Session) { fired = true })
	defer unsubscribe()

	rec := httptest.NewRecorder()
	store.handleOAuthCallback(rec, httptest.NewRequest(http.MethodGet, "/callback?refresh_token=bad", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, fired)

	current, _ := store.GetCurrentSession(context.Background())
	assert.Nil(t, current)
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	h := newHub()

	var order []string
	unsubA := h.subscribe(func(event AuthEvent, s *Session) { order = append(order, "a") })
	unsubB := h.subscribe(func(event AuthEvent, s *Session) { order = append(order, "b") })

	h.publish(EventSignedIn, &Session{UserID: "u-1"})
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	h.publish(EventSignedOut, nil)
	assert.Equal(t, []string{"a", "b", "b"}, order)

	unsubB()
	h.publish(EventSignedOut, nil)
	assert.Equal(t, []string{"a", "b", "b"}, order)
}
