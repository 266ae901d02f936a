package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pathshare/pathshare/internal/logger"
	"github.com/pathshare/pathshare/internal/session"
	"go.uber.org/zap"
)

// ErrNoSession is returned when a profile write is attempted while signed out.
var ErrNoSession = errors.New("no live session")

// Cache is the in-memory profile for the current user. It is seeded from the
// store on sign-in and updated optimistically on local edits: a failed remote
// write simply does not apply locally, with no queued retry.
type Cache struct {
	store session.Store

	mu      sync.Mutex
	profile Profile
	userID  string
}

// NewCache creates a default-initialized profile cache.
func NewCache(store session.Store) *Cache {
	return &Cache{
		store:   store,
		profile: Default(),
	}
}

// Current returns a copy of the in-memory profile.
func (c *Cache) Current() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Reset returns the cache to the signed-out defaults.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = Default()
	c.userID = ""
}

// Load fetches the row keyed by the session's user id and merges it into
// memory. When the store reports no row, a fresh profile is constructed from
// session metadata, upserted, and merged only if the write succeeds.
func (c *Cache) Load(ctx context.Context, s *session.Session) error {
	if s == nil || s.UserID == "" {
		return ErrNoSession
	}

	c.mu.Lock()
	c.userID = s.UserID
	c.mu.Unlock()

	row, err := c.store.GetProfileRow(ctx, s.UserID)
	switch {
	case err == nil:
		c.mu.Lock()
		c.profile.merge(row)
		c.mu.Unlock()
		return nil

	case errors.Is(err, session.ErrProfileNotFound):
		created := NewFromSession(s)
		if err := c.store.UpsertProfileRow(ctx, created.Row()); err != nil {
			// Memory stays at the defaults; the next sign-in retries creation.
			logger.Error("failed to create profile row", zap.String("user_id", s.UserID), zap.Error(err))
			return fmt.Errorf("failed to create profile: %w", err)
		}
		c.mu.Lock()
		c.profile.merge(created.Row())
		c.mu.Unlock()
		logger.Info("created profile with welcome bonus", zap.String("user_id", s.UserID))
		return nil

	default:
		logger.Error("failed to load profile row", zap.String("user_id", s.UserID), zap.Error(err))
		return fmt.Errorf("failed to load profile: %w", err)
	}
}

// Update upserts the patch keyed by the current user id and, on success,
// applies it to memory. The error is surfaced so the caller can offer a
// retry instead of silently discarding the edit.
func (c *Cache) Update(ctx context.Context, patch Patch) error {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	if userID == "" {
		return ErrNoSession
	}

	if err := c.store.UpsertProfileRow(ctx, patch.Row(userID)); err != nil {
		logger.Error("profile update failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	c.mu.Lock()
	patch.apply(&c.profile)
	c.mu.Unlock()
	return nil
}
