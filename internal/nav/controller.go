// Package nav owns "what is currently shown" and the handful of cross-screen
// flags. Screens never touch this state directly; every mutation goes through
// the operations below, and the session store subscription is the sole
// authority for the logged-in flag.
package nav

import (
	"context"
	"sync"
	"time"

	"github.com/pathshare/pathshare/internal/logger"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/profile"
	"github.com/pathshare/pathshare/internal/session"
	"github.com/pathshare/pathshare/internal/theme"
	"go.uber.org/zap"
)

// State is the cross-screen UI state. SelectedRide is non-nil only while the
// ride-details screen is current; it is cleared whenever navigation leaves
// that screen so a re-entry without a new selection cannot show a stale ride.
type State struct {
	CurrentScreen Screen
	IsSidebarOpen bool
	IsDarkMode    bool
	SelectedRide  *models.RideMatch

	// PassedLocationGate records that the user has been through the
	// location prompt, not that the platform granted anything: deny
	// proceeds identically to allow.
	PassedLocationGate bool

	IsLoggedIn bool
}

// Controller is the single authority for navigation and cross-screen flags.
// All operations are synchronous assignments; the only scheduled work is the
// cancellable splash timeout.
type Controller struct {
	store       session.Store
	profiles    *profile.Cache
	themes      *theme.Store
	splashDelay time.Duration

	mu          sync.Mutex
	state       State
	splashTimer *time.Timer
	unsubscribe func()
	onChange    func()
}

// NewController creates a controller at the splash screen, with dark mode
// initialized from the durable preference.
func NewController(store session.Store, profiles *profile.Cache, themes *theme.Store, splashDelay time.Duration) *Controller {
	return &Controller{
		store:       store,
		profiles:    profiles,
		themes:      themes,
		splashDelay: splashDelay,
		state: State{
			CurrentScreen: ScreenSplash,
			IsDarkMode:    themes.Load(),
		},
	}
}

// SetOnChange registers a callback invoked after every state change. The TUI
// bridges it to a redraw message; timer and auth-event changes arrive from
// other goroutines.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Profile returns the current in-memory profile.
func (c *Controller) Profile() profile.Profile {
	return c.profiles.Current()
}

// Start performs the startup session fetch, arms the splash timeout, and
// subscribes to auth changes. The subscription stays up until Stop.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.splashTimer = time.AfterFunc(c.splashDelay, c.splashTimeout)
	c.mu.Unlock()

	c.unsubscribe = c.store.SubscribeAuthChanges(c.handleAuthChange)

	s, err := c.store.GetCurrentSession(ctx)
	if err != nil {
		logger.Warn("initial session fetch failed", zap.Error(err))
		return
	}
	if s != nil {
		c.handleAuthChange(session.EventInitialSession, s)
	}
}

// Stop tears down the subscription and cancels the splash timer.
func (c *Controller) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.mu.Lock()
	c.stopSplashTimer()
	c.mu.Unlock()
}

// GoTo unconditionally sets the current screen. Any screen may transition to
// any other; the view layer encodes which transitions are reachable.
func (c *Controller) GoTo(screen Screen) {
	c.mu.Lock()
	c.goTo(screen)
	c.mu.Unlock()
	c.notify()
}

// SelectRideAndShowDetails stores the selection and opens ride details.
func (c *Controller) SelectRideAndShowDetails(ride *models.RideMatch) {
	c.mu.Lock()
	c.state.SelectedRide = ride
	c.goTo(ScreenRideDetails)
	c.mu.Unlock()
	c.notify()
}

// RequestRideSearch opens search, or the location prompt if the user has not
// been through the gate yet. This is the only conditional transition.
func (c *Controller) RequestRideSearch() {
	c.mu.Lock()
	if c.state.PassedLocationGate {
		c.goTo(ScreenSearch)
	} else {
		c.goTo(ScreenLocationPermission)
	}
	c.mu.Unlock()
	c.notify()
}

// GrantLocationPermission passes the gate and opens search.
func (c *Controller) GrantLocationPermission() {
	c.passLocationGate()
}

// DenyLocationPermission proceeds identically to allow: the product treats
// "denied" as "continue without location" rather than blocking.
func (c *Controller) DenyLocationPermission() {
	c.passLocationGate()
}

func (c *Controller) passLocationGate() {
	c.mu.Lock()
	c.state.PassedLocationGate = true
	c.goTo(ScreenSearch)
	c.mu.Unlock()
	c.notify()
}

// OpenSidebar opens the profile sidebar over the current screen.
func (c *Controller) OpenSidebar() {
	c.mu.Lock()
	c.state.IsSidebarOpen = true
	c.mu.Unlock()
	c.notify()
}

// CloseSidebar closes the profile sidebar.
func (c *Controller) CloseSidebar() {
	c.mu.Lock()
	c.state.IsSidebarOpen = false
	c.mu.Unlock()
	c.notify()
}

// NavigateFromSidebar closes the sidebar and navigates in one step, so a
// stale open sidebar is never visible after the transition.
func (c *Controller) NavigateFromSidebar(screen Screen) {
	c.mu.Lock()
	c.state.IsSidebarOpen = false
	c.goTo(screen)
	c.mu.Unlock()
	c.notify()
}

// LogIn is the login screen's post-submit nudge to home. It deliberately
// does not touch the logged-in flag: the auth subscription is the source of
// truth, and a later "session absent" event still wins and forces login.
func (c *Controller) LogIn() {
	c.mu.Lock()
	c.goTo(ScreenHome)
	c.mu.Unlock()
	c.notify()
}

// LogOut signs out of the store, then resets the cross-screen flags and
// returns to login. The location gate is reset so a re-login re-prompts.
func (c *Controller) LogOut(ctx context.Context) {
	// SignOut publishes the signed-out event, which also lands in
	// handleAuthChange; both paths assign the same values.
	if err := c.store.SignOut(ctx); err != nil {
		logger.Warn("sign-out failed", zap.Error(err))
	}

	c.mu.Lock()
	c.state.IsLoggedIn = false
	c.state.IsSidebarOpen = false
	c.state.PassedLocationGate = false
	c.goTo(ScreenLogin)
	c.mu.Unlock()
	c.notify()
}

// ToggleDarkMode flips the flag and forwards the new value to the durable
// preference store.
func (c *Controller) ToggleDarkMode() {
	c.mu.Lock()
	c.state.IsDarkMode = !c.state.IsDarkMode
	dark := c.state.IsDarkMode
	c.mu.Unlock()

	if err := c.themes.Save(dark); err != nil {
		logger.Warn("failed to persist theme preference", zap.Error(err))
	}
	c.notify()
}

// SignInWithPassword relays a password sign-in to the store. Screens have no
// direct store access; failures surface inline on the login screen.
func (c *Controller) SignInWithPassword(ctx context.Context, email, password string) error {
	return c.store.SignInWithPassword(ctx, email, password)
}

// SignUp relays an account registration to the store.
func (c *Controller) SignUp(ctx context.Context, email, password, fullName string) error {
	return c.store.SignUp(ctx, email, password, fullName)
}

// OAuthSignInURL relays the redirect-based OAuth leg. The resulting session
// arrives through the auth subscription.
func (c *Controller) OAuthSignInURL(provider string) (string, error) {
	return c.store.OAuthSignInURL(provider)
}

// UpdateProfile writes a partial edit through the profile cache.
func (c *Controller) UpdateProfile(ctx context.Context, patch profile.Patch) error {
	err := c.profiles.Update(ctx, patch)
	if err == nil {
		c.notify()
	}
	return err
}

// handleAuthChange is the session lifecycle adapter. A present session sets
// the logged-in flag, loads the profile, and advances past splash/login only
// if the user has not already navigated elsewhere. An absent session forces
// the login screen unconditionally, even mid-flow.
func (c *Controller) handleAuthChange(event session.AuthEvent, s *session.Session) {
	logger.Debug("auth event", zap.String("event", string(event)))

	if s == nil {
		c.profiles.Reset()
		c.mu.Lock()
		c.state.IsLoggedIn = false
		c.goTo(ScreenLogin)
		c.mu.Unlock()
		c.notify()
		return
	}

	c.mu.Lock()
	c.state.IsLoggedIn = true
	c.stopSplashTimer()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := c.profiles.Load(ctx, s); err != nil {
		logger.Warn("profile load failed", zap.Error(err))
	}

	c.mu.Lock()
	if c.state.CurrentScreen == ScreenSplash || c.state.CurrentScreen == ScreenLogin {
		c.goTo(ScreenHome)
	}
	c.mu.Unlock()
	c.notify()
}

// splashTimeout fires once after the configured delay: still on splash and
// not logged in means the session fetch came back empty, so show login.
func (c *Controller) splashTimeout() {
	c.mu.Lock()
	fire := c.state.CurrentScreen == ScreenSplash && !c.state.IsLoggedIn
	if fire {
		c.goTo(ScreenLogin)
	}
	c.mu.Unlock()
	if fire {
		c.notify()
	}
}

// goTo performs the transition. Callers hold the lock.
func (c *Controller) goTo(screen Screen) {
	if c.state.CurrentScreen == ScreenRideDetails && screen != ScreenRideDetails {
		c.state.SelectedRide = nil
	}
	if c.state.CurrentScreen == ScreenSplash && screen != ScreenSplash {
		c.stopSplashTimer()
	}
	c.state.CurrentScreen = screen
}

// stopSplashTimer cancels the pending timeout. Callers hold the lock.
func (c *Controller) stopSplashTimer() {
	if c.splashTimer != nil {
		c.splashTimer.Stop()
		c.splashTimer = nil
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
