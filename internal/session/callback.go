package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pathshare/pathshare/internal/logger"
	"go.uber.org/zap"
)

// callbackPage bounces the token parameters out of the URL fragment, where
// the auth service delivers them, into query parameters the handler can read.
const callbackPage = `<!DOCTYPE html>
<html><body><script>
if (window.location.hash) {
  window.location.replace(window.location.pathname + "?" + window.location.hash.substring(1));
} else {
  document.body.innerText = "Sign-in failed: the redirect carried no tokens.";
}
</script></body></html>`

const callbackDonePage = "Signed in. You can close this tab and return to the terminal."

// startOAuthCallback serves the configured redirect target for one sign-in.
// Safe to call again while a listener is already up; the listener shuts
// itself down once the tokens arrive.
func (s *SupabaseStore) startOAuthCallback() error {
	s.mu.Lock()
	running := s.callback != nil
	s.mu.Unlock()
	if running {
		return nil
	}

	target, err := url.Parse(s.redirect)
	if err != nil {
		return fmt.Errorf("invalid oauth redirect %q: %w", s.redirect, err)
	}

	path := target.Path
	if path == "" {
		path = "/"
	}

	ln, err := net.Listen("tcp", target.Host)
	if err != nil {
		return fmt.Errorf("failed to listen for oauth redirect: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleOAuthCallback)
	server := &http.Server{Handler: mux}

	s.mu.Lock()
	s.callback = server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Warn("oauth callback server stopped", zap.Error(err))
		}
	}()

	logger.Debug("oauth callback listening", zap.String("addr", target.Host))
	return nil
}

func (s *SupabaseStore) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh_token")
	if refresh == "" {
		// First hit: the tokens are still in the fragment.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(callbackPage))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	sess, err := s.refreshSession(ctx, refresh)
	if err != nil {
		logger.Warn("oauth token exchange failed", zap.Error(err))
		http.Error(w, "Sign-in failed. Return to the terminal and try again.", http.StatusBadGateway)
		return
	}

	s.setSession(sess)
	logger.Info("signed in via oauth", zap.String("user_id", sess.UserID))
	s.events.publish(EventSignedIn, sess)

	_, _ = w.Write([]byte(callbackDonePage))
	s.stopOAuthCallback()
}

func (s *SupabaseStore) stopOAuthCallback() {
	s.mu.Lock()
	server := s.callback
	s.callback = nil
	s.mu.Unlock()
	if server == nil {
		return
	}

	// Shutdown waits for in-flight handlers, so it cannot run on the
	// handler's own goroutine.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()
}
