package nav

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pathshare/pathshare/internal/config"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/profile"
	"github.com/pathshare/pathshare/internal/session"
	"github.com/pathshare/pathshare/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory session.Store for controller tests.
type fakeStore struct {
	mu       sync.Mutex
	current  *session.Session
	rows     map[string]session.Row
	handlers map[int]session.AuthHandler
	next     int

	signOutCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:     make(map[string]session.Row),
		handlers: make(map[int]session.AuthHandler),
	}
}

func (f *fakeStore) GetCurrentSession(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeStore) SubscribeAuthChanges(handler session.AuthHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.handlers[id] = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

func (f *fakeStore) publish(event session.AuthEvent, s *session.Session) {
	f.mu.Lock()
	f.current = s
	handlers := make([]session.AuthHandler, 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(event, s)
	}
}

func (f *fakeStore) SignInWithPassword(ctx context.Context, email, password string) error {
	return nil
}

func (f *fakeStore) SignUp(ctx context.Context, email, password, fullName string) error {
	return nil
}

func (f *fakeStore) OAuthSignInURL(provider string) (string, error) {
	return "https://example.test/authorize?provider=" + provider, nil
}

func (f *fakeStore) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.current = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) GetProfileRow(ctx context.Context, id string) (session.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, session.ErrProfileNotFound
	}
	return row, nil
}

func (f *fakeStore) UpsertProfileRow(ctx context.Context, row session.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := row["id"].(string)
	existing, ok := f.rows[id]
	if !ok {
		existing = session.Row{}
	}
	for k, v := range row {
		existing[k] = v
	}
	f.rows[id] = existing
	return nil
}

func newTestController(t *testing.T, store *fakeStore, splashDelay time.Duration) *Controller {
	t.Helper()
	themes := theme.NewStore(&config.ThemeConfig{
		File: filepath.Join(t.TempDir(), "theme.yaml"),
	})
	return NewController(store, profile.NewCache(store), themes, splashDelay)
}

func TestGoToLastWriteWins(t *testing.T) {
	ctrl := newTestController(t, newFakeStore(), time.Hour)

	sequence := []Screen{ScreenHome, ScreenSearch, ScreenRewards, ScreenHelp, ScreenHome}
	for _, screen := range sequence {
		ctrl.GoTo(screen)
		assert.Equal(t, screen, ctrl.State().CurrentScreen)
	}
}

func TestRequestRideSearchGate(t *testing.T) {
	tests := []struct {
		name       string
		passedGate bool
		want       Screen
	}{
		{name: "gate not passed prompts for permission", passedGate: false, want: ScreenLocationPermission},
		{name: "gate passed goes straight to search", passedGate: true, want: ScreenSearch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := newTestController(t, newFakeStore(), time.Hour)
			if tc.passedGate {
				ctrl.GrantLocationPermission()
				ctrl.GoTo(ScreenHome)
			}
			ctrl.RequestRideSearch()
			assert.Equal(t, tc.want, ctrl.State().CurrentScreen)
		})
	}
}

func TestLocationGateBothBranchesConverge(t *testing.T) {
	for _, deny := range []bool{false, true} {
		ctrl := newTestController(t, newFakeStore(), time.Hour)
		if deny {
			ctrl.DenyLocationPermission()
		} else {
			ctrl.GrantLocationPermission()
		}
		state := ctrl.State()
		assert.True(t, state.PassedLocationGate)
		assert.Equal(t, ScreenSearch, state.CurrentScreen)
	}
}

func TestLogOutResetsEverything(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store, time.Hour)

	// Put the controller into a fully-used state first.
	ctrl.GrantLocationPermission()
	ctrl.OpenSidebar()

	ctrl.LogOut(context.Background())

	want := State{CurrentScreen: ScreenLogin}
	if diff := cmp.Diff(want, ctrl.State()); diff != "" {
		t.Errorf("state after logout mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, store.signOutCalls)
}

func TestToggleDarkModeIdempotence(t *testing.T) {
	dir := t.TempDir()
	themes := theme.NewStore(&config.ThemeConfig{File: filepath.Join(dir, "theme.yaml")})
	store := newFakeStore()
	ctrl := NewController(store, profile.NewCache(store), themes, time.Hour)

	original := ctrl.State().IsDarkMode
	ctrl.ToggleDarkMode()
	assert.Equal(t, !original, ctrl.State().IsDarkMode)
	assert.Equal(t, !original, themes.Load())

	ctrl.ToggleDarkMode()
	assert.Equal(t, original, ctrl.State().IsDarkMode)
	assert.Equal(t, original, themes.Load())
}

func TestSelectedRideClearedOnLeavingDetails(t *testing.T) {
	ctrl := newTestController(t, newFakeStore(), time.Hour)

	ride := &models.RideMatch{ID: "1", Name: "Sneha Kapur"}
	ctrl.SelectRideAndShowDetails(ride)

	state := ctrl.State()
	require.Equal(t, ScreenRideDetails, state.CurrentScreen)
	require.Same(t, ride, state.SelectedRide)

	ctrl.GoTo(ScreenSearch)
	assert.Nil(t, ctrl.State().SelectedRide)
}

func TestStartupSessionAdvancesFromSplash(t *testing.T) {
	store := newFakeStore()
	store.current = &session.Session{UserID: "u-1", Email: "jane@example.com", FullName: "Jane"}

	ctrl := newTestController(t, store, time.Hour)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	state := ctrl.State()
	assert.True(t, state.IsLoggedIn)
	assert.Equal(t, ScreenHome, state.CurrentScreen)
	assert.Equal(t, "Jane", ctrl.Profile().Name)
}

func TestStartupSessionDoesNotClobberNavigation(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store, time.Hour)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	// The user navigated before the auth event arrived.
	ctrl.GrantLocationPermission()
	require.Equal(t, ScreenSearch, ctrl.State().CurrentScreen)

	store.publish(session.EventSignedIn, &session.Session{UserID: "u-1", Email: "jane@example.com"})

	state := ctrl.State()
	assert.True(t, state.IsLoggedIn)
	assert.Equal(t, ScreenSearch, state.CurrentScreen)
}

func TestSessionLossForcesLoginUnconditionally(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store, time.Hour)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	store.publish(session.EventSignedIn, &session.Session{UserID: "u-1", Email: "jane@example.com"})
	ctrl.SelectRideAndShowDetails(&models.RideMatch{ID: "1"})
	require.Equal(t, ScreenRideDetails, ctrl.State().CurrentScreen)

	store.publish(session.EventSignedOut, nil)

	state := ctrl.State()
	assert.False(t, state.IsLoggedIn)
	assert.Equal(t, ScreenLogin, state.CurrentScreen)
}

func TestManualLogInIsOnlyANudge(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store, time.Hour)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	ctrl.LogIn()
	state := ctrl.State()
	assert.Equal(t, ScreenHome, state.CurrentScreen)
	// The subscription owns the flag; the nudge must not fake auth truth.
	assert.False(t, state.IsLoggedIn)

	// A late "session absent" event still wins.
	store.publish(session.EventSignedOut, nil)
	assert.Equal(t, ScreenLogin, ctrl.State().CurrentScreen)
}

func TestSplashTimeoutFires(t *testing.T) {
	ctrl := newTestController(t, newFakeStore(), 30*time.Millisecond)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	require.Equal(t, ScreenSplash, ctrl.State().CurrentScreen)

	assert.Eventually(t, func() bool {
		return ctrl.State().CurrentScreen == ScreenLogin
	}, time.Second, 5*time.Millisecond)
}

func TestSplashTimeoutCancelledByLogin(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store, 50*time.Millisecond)
	ctrl.Start(context.Background())
	defer ctrl.Stop()

	store.publish(session.EventSignedIn, &session.Session{UserID: "u-1", Email: "jane@example.com"})
	require.Equal(t, ScreenHome, ctrl.State().CurrentScreen)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, ScreenHome, ctrl.State().CurrentScreen)
}

func TestScreenSetIsClosed(t *testing.T) {
	for _, screen := range Screens {
		assert.True(t, screen.Valid(), "screen %q", screen)
	}
	assert.False(t, Screen("payments").Valid())
}

func TestOnChangeNotifiedForEveryMutation(t *testing.T) {
	ctrl := newTestController(t, newFakeStore(), time.Hour)

	var mu sync.Mutex
	calls := 0
	ctrl.SetOnChange(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	ctrl.GoTo(ScreenHome)
	ctrl.OpenSidebar()
	ctrl.CloseSidebar()
	ctrl.ToggleDarkMode()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, calls)
}
