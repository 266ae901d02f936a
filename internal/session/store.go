// Package session talks to the hosted auth and row store. The rest of the
// app only depends on the Store interface; the concrete implementation is a
// REST client for a Supabase project (GoTrue auth plus PostgREST rows).
package session

import (
	"context"
	"errors"
	"fmt"
)

// AuthEvent identifies what changed on the auth channel.
type AuthEvent string

const (
	EventInitialSession AuthEvent = "INITIAL_SESSION"
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Session is the proof of authentication for a user. It is opaque to the
// rest of the app beyond the user id and the metadata hints used to seed a
// profile.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	FullName     string
	AvatarURL    string
}

// Row is a single profiles table row as returned by the store. Absent
// columns are simply missing keys.
type Row map[string]any

// ErrProfileNotFound signals "no row for this user id". It is not a failure;
// the profile cache reacts by creating a default profile.
var ErrProfileNotFound = errors.New("profile row not found")

// AuthError is any sign-in/up/out failure from the store. It is shown inline
// on the originating screen and never retried.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

// AuthHandler receives every auth change: sign-in, sign-out and token
// refresh all deliver through the same channel. The session is nil when the
// user is signed out.
type AuthHandler func(event AuthEvent, s *Session)

// Store is the external auth/profile store contract.
type Store interface {
	// GetCurrentSession returns the current session, or nil when signed out.
	GetCurrentSession(ctx context.Context) (*Session, error)

	// SubscribeAuthChanges registers a handler for auth events and returns
	// an unsubscribe function. The handler is not invoked for events that
	// occurred before the subscription.
	SubscribeAuthChanges(handler AuthHandler) (unsubscribe func())

	SignInWithPassword(ctx context.Context, email, password string) error

	// SignUp registers a new account. The verification email side effect is
	// the store's concern; no session is established until the address is
	// confirmed.
	SignUp(ctx context.Context, email, password, fullName string) error

	// OAuthSignInURL returns the authorize URL for a redirect-based OAuth
	// sign-in. The flow completes asynchronously through the subscription
	// channel, not a direct return.
	OAuthSignInURL(provider string) (string, error)

	SignOut(ctx context.Context) error

	// GetProfileRow fetches the profiles row keyed by user id. A missing
	// row is reported as ErrProfileNotFound, distinct from transport or
	// server failures.
	GetProfileRow(ctx context.Context, id string) (Row, error)

	// UpsertProfileRow writes the given row, merging on the id key.
	UpsertProfileRow(ctx context.Context, row Row) error
}
