package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pathshare/pathshare/internal/config"
	"github.com/pathshare/pathshare/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// pgNotFoundCode is the PostgREST code for "JSON object requested, zero rows
// returned" when a single row is selected.
const pgNotFoundCode = "PGRST116"

// SupabaseStore implements Store against a Supabase project over REST.
type SupabaseStore struct {
	client  *http.Client
	baseURL string
	anonKey string

	redirect string
	events   *hub
	tokens   tokenFile

	mu       sync.Mutex
	current  *Session
	callback *http.Server
}

// NewSupabaseStore creates a store client for the configured project.
func NewSupabaseStore(cfg *config.SessionConfig) *SupabaseStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &SupabaseStore{
		client:   &http.Client{Timeout: timeout},
		baseURL:  cfg.URL,
		anonKey:  cfg.AnonKey,
		redirect: cfg.OAuthRedirect,
		events:   newHub(),
		tokens:   tokenFile{path: cfg.TokenFile},
	}
}

// GetCurrentSession returns the live session. When none is held in memory, a
// refresh token left behind by a previous run is exchanged through the
// refresh grant, so reopening the app keeps the user signed in.
func (s *SupabaseStore) GetCurrentSession(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current != nil {
		return current, nil
	}

	refresh := s.tokens.Load()
	if refresh == "" {
		return nil, nil
	}

	sess, err := s.refreshSession(ctx, refresh)
	if err != nil {
		// A rejected token is stale; drop it so the next start is clean.
		s.tokens.Clear()
		logger.Warn("session restore failed", zap.Error(err))
		return nil, nil
	}

	s.setSession(sess)
	logger.Info("session restored", zap.String("user_id", sess.UserID))
	return sess, nil
}

// refreshSession exchanges a refresh token for a full session, including the
// user record a stored token alone does not carry.
func (s *SupabaseStore) refreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body, err := s.authRequest(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]any{
		"refresh_token": refreshToken,
	}, "")
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return token.session(), nil
}

func (s *SupabaseStore) SubscribeAuthChanges(handler AuthHandler) func() {
	return s.events.subscribe(handler)
}

// tokenResponse is the GoTrue token/signup payload we care about.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FullName  string `json:"full_name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (t *tokenResponse) session() *Session {
	return &Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		UserID:       t.User.ID,
		Email:        t.User.Email,
		FullName:     t.User.UserMetadata.FullName,
		AvatarURL:    t.User.UserMetadata.AvatarURL,
	}
}

func (s *SupabaseStore) SignInWithPassword(ctx context.Context, email, password string) error {
	body, err := s.authRequest(ctx, "/auth/v1/token?grant_type=password", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	sess := token.session()
	s.setSession(sess)
	logger.Info("signed in", zap.String("user_id", sess.UserID))
	s.events.publish(EventSignedIn, sess)
	return nil
}

func (s *SupabaseStore) SignUp(ctx context.Context, email, password, fullName string) error {
	_, err := s.authRequest(ctx, "/auth/v1/signup", map[string]any{
		"email":    email,
		"password": password,
		"data": map[string]any{
			"full_name": fullName,
		},
	}, "")
	if err != nil {
		return err
	}
	// The store sends the verification email; a session only appears once
	// the address is confirmed, via the auth channel.
	logger.Info("sign-up submitted", zap.String("email", email))
	return nil
}

// OAuthSignInURL builds the redirect-based authorize URL for the provider
// and arms the local callback listener that completes the flow. The session
// arrives through the subscription channel once the redirect lands.
func (s *SupabaseStore) OAuthSignInURL(provider string) (string, error) {
	if provider == "" {
		return "", fmt.Errorf("oauth provider is required")
	}

	if err := s.startOAuthCallback(); err != nil {
		return "", err
	}

	oauthCfg := &oauth2.Config{
		ClientID:    s.anonKey,
		RedirectURL: s.redirect,
		Endpoint: oauth2.Endpoint{
			AuthURL: s.baseURL + "/auth/v1/authorize",
		},
	}

	return oauthCfg.AuthCodeURL("",
		oauth2.SetAuthURLParam("provider", provider),
		oauth2.SetAuthURLParam("redirect_to", s.redirect),
		oauth2.SetAuthURLParam("access_type", "offline"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

func (s *SupabaseStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current != nil {
		if _, err := s.authRequest(ctx, "/auth/v1/logout", map[string]any{}, current.AccessToken); err != nil {
			// Local sign-out still proceeds; the token simply expires server-side.
			logger.Warn("remote sign-out failed", zap.Error(err))
		}
	}

	s.setSession(nil)
	s.events.publish(EventSignedOut, nil)
	return nil
}

func (s *SupabaseStore) GetProfileRow(ctx context.Context, id string) (Row, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/profiles?id=eq.%s&select=*", s.baseURL, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)
	// Ask PostgREST for a single object so a missing row is a distinct signal.
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var pgErr struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Code == pgNotFoundCode {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile fetch failed: status %d", resp.StatusCode)
	}

	var row Row
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("failed to decode profile row: %w", err)
	}
	return row, nil
}

func (s *SupabaseStore) UpsertProfileRow(ctx context.Context, row Row) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}

	endpoint := s.baseURL + "/rest/v1/profiles"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("profile upsert failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("profile upsert failed: status %d", resp.StatusCode)
	}
	return nil
}

// authRequest posts JSON to a GoTrue endpoint and maps failures to AuthError.
func (s *SupabaseStore) authRequest(ctx context.Context, path string, payload map[string]any, bearer string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &AuthError{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		var gotrueErr struct {
			Msg         string `json:"msg"`
			Description string `json:"error_description"`
		}
		_ = json.Unmarshal(respBody, &gotrueErr)
		message := gotrueErr.Description
		if message == "" {
			message = gotrueErr.Msg
		}
		return nil, &AuthError{Status: resp.StatusCode, Message: message}
	}

	return respBody, nil
}

func (s *SupabaseStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.anonKey)
	if req.Header.Get("Authorization") == "" {
		s.mu.Lock()
		if s.current != nil {
			req.Header.Set("Authorization", "Bearer "+s.current.AccessToken)
		} else {
			req.Header.Set("Authorization", "Bearer "+s.anonKey)
		}
		s.mu.Unlock()
	}
}

func (s *SupabaseStore) setSession(sess *Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if sess == nil {
		s.tokens.Clear()
		return
	}
	if err := s.tokens.Save(sess.RefreshToken); err != nil {
		logger.Warn("failed to persist session", zap.Error(err))
	}
}
