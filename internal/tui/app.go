package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/nav"
	"github.com/pathshare/pathshare/internal/support"
)

// StateChangedMsg is sent whenever the navigation controller mutates state,
// including from the splash timer and auth-event goroutines.
type StateChangedMsg struct{}

// AppModel is the main application model. It is the render dispatch site for
// the screen set: every nav.Screen maps to exactly one page model here.
type AppModel struct {
	ctrl *nav.Controller

	splash      SplashModel
	login       LoginModel
	home        HomeModel
	search      SearchModel
	offer       OfferModel
	rideDetails RideDetailsModel
	location    LocationModel
	freeTrips   FreeTripsModel
	rideHistory RideHistoryModel
	rewards     RewardsModel
	help        HelpModel
	circles     CirclesModel
	account     AccountModel
	sidebar     SidebarModel

	chat       *support.Chat
	prevScreen nav.Screen
	width      int
	height     int
}

// NewAppModel creates the app model with one page per screen.
func NewAppModel(ctrl *nav.Controller, chat *support.Chat) AppModel {
	return AppModel{
		ctrl:        ctrl,
		splash:      NewSplashModel(ctrl),
		login:       NewLoginModel(ctrl),
		home:        NewHomeModel(ctrl),
		search:      NewSearchModel(ctrl),
		offer:       NewOfferModel(ctrl),
		rideDetails: NewRideDetailsModel(ctrl),
		location:    NewLocationModel(ctrl),
		freeTrips:   NewFreeTripsModel(ctrl),
		rideHistory: NewRideHistoryModel(ctrl),
		rewards:     NewRewardsModel(ctrl),
		help:        NewHelpModel(ctrl, chat),
		circles:     NewCirclesModel(ctrl),
		account:     NewAccountModel(ctrl),
		sidebar:     NewSidebarModel(ctrl),
		chat:        chat,
		prevScreen:  ctrl.State().CurrentScreen,
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.splash.Init(),
		m.login.Init(),
	)
}

// Update handles app-level messages and delegates to the active page model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		screen := m.ctrl.State().CurrentScreen
		if screen == m.prevScreen {
			return m, nil
		}
		m.prevScreen = screen
		return m.enterScreen(screen)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// The sidebar overlays whatever screen is active and, while open,
		// owns the keyboard.
		if m.ctrl.State().IsSidebarOpen {
			model, cmd := m.sidebar.Update(msg)
			m.sidebar = model.(SidebarModel)
			return m, cmd
		}
	}

	return m.delegate(msg)
}

// enterScreen resets the page being entered so its local state starts fresh,
// and runs its Init for any scheduled work (status timers, input blink).
func (m AppModel) enterScreen(screen nav.Screen) (tea.Model, tea.Cmd) {
	switch screen {
	case nav.ScreenRideDetails:
		m.rideDetails = NewRideDetailsModel(m.ctrl)
		m.rideDetails.width, m.rideDetails.height = m.width, m.height
		return m, m.rideDetails.Init()
	case nav.ScreenOffer:
		m.offer = NewOfferModel(m.ctrl)
		m.offer.width, m.offer.height = m.width, m.height
		return m, m.offer.Init()
	case nav.ScreenAccount:
		m.account = NewAccountModel(m.ctrl)
		m.account.width, m.account.height = m.width, m.height
		return m, m.account.Init()
	case nav.ScreenLogin:
		return m, m.login.Init()
	}
	return m, nil
}

func (m AppModel) broadcast(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	var model tea.Model

	model, cmd = m.splash.Update(msg)
	m.splash = model.(SplashModel)
	cmds = append(cmds, cmd)

	model, cmd = m.login.Update(msg)
	m.login = model.(LoginModel)
	cmds = append(cmds, cmd)

	model, cmd = m.home.Update(msg)
	m.home = model.(HomeModel)
	cmds = append(cmds, cmd)

	model, cmd = m.search.Update(msg)
	m.search = model.(SearchModel)
	cmds = append(cmds, cmd)

	model, cmd = m.offer.Update(msg)
	m.offer = model.(OfferModel)
	cmds = append(cmds, cmd)

	model, cmd = m.rideDetails.Update(msg)
	m.rideDetails = model.(RideDetailsModel)
	cmds = append(cmds, cmd)

	model, cmd = m.location.Update(msg)
	m.location = model.(LocationModel)
	cmds = append(cmds, cmd)

	model, cmd = m.freeTrips.Update(msg)
	m.freeTrips = model.(FreeTripsModel)
	cmds = append(cmds, cmd)

	model, cmd = m.rideHistory.Update(msg)
	m.rideHistory = model.(RideHistoryModel)
	cmds = append(cmds, cmd)

	model, cmd = m.rewards.Update(msg)
	m.rewards = model.(RewardsModel)
	cmds = append(cmds, cmd)

	model, cmd = m.help.Update(msg)
	m.help = model.(HelpModel)
	cmds = append(cmds, cmd)

	model, cmd = m.circles.Update(msg)
	m.circles = model.(CirclesModel)
	cmds = append(cmds, cmd)

	model, cmd = m.account.Update(msg)
	m.account = model.(AccountModel)
	cmds = append(cmds, cmd)

	model, cmd = m.sidebar.Update(msg)
	m.sidebar = model.(SidebarModel)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// delegate routes the message to the active page. The switch covers the
// whole screen set; ScreenCovered keeps it honest.
func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var model tea.Model

	switch m.ctrl.State().CurrentScreen {
	case nav.ScreenSplash:
		model, cmd = m.splash.Update(msg)
		m.splash = model.(SplashModel)
	case nav.ScreenLogin:
		model, cmd = m.login.Update(msg)
		m.login = model.(LoginModel)
	case nav.ScreenHome:
		model, cmd = m.home.Update(msg)
		m.home = model.(HomeModel)
	case nav.ScreenSearch:
		model, cmd = m.search.Update(msg)
		m.search = model.(SearchModel)
	case nav.ScreenOffer:
		model, cmd = m.offer.Update(msg)
		m.offer = model.(OfferModel)
	case nav.ScreenRideDetails:
		model, cmd = m.rideDetails.Update(msg)
		m.rideDetails = model.(RideDetailsModel)
	case nav.ScreenLocationPermission:
		model, cmd = m.location.Update(msg)
		m.location = model.(LocationModel)
	case nav.ScreenFreeTrips:
		model, cmd = m.freeTrips.Update(msg)
		m.freeTrips = model.(FreeTripsModel)
	case nav.ScreenRideHistory:
		model, cmd = m.rideHistory.Update(msg)
		m.rideHistory = model.(RideHistoryModel)
	case nav.ScreenRewards:
		model, cmd = m.rewards.Update(msg)
		m.rewards = model.(RewardsModel)
	case nav.ScreenHelp:
		model, cmd = m.help.Update(msg)
		m.help = model.(HelpModel)
	case nav.ScreenFrndCircles:
		model, cmd = m.circles.Update(msg)
		m.circles = model.(CirclesModel)
	case nav.ScreenAccount:
		model, cmd = m.account.Update(msg)
		m.account = model.(AccountModel)
	}

	return m, cmd
}

// View renders the active page, with the sidebar drawn on top when open.
func (m AppModel) View() string {
	if m.ctrl.State().IsSidebarOpen {
		return m.sidebar.View()
	}

	switch m.ctrl.State().CurrentScreen {
	case nav.ScreenSplash:
		return m.splash.View()
	case nav.ScreenLogin:
		return m.login.View()
	case nav.ScreenHome:
		return m.home.View()
	case nav.ScreenSearch:
		return m.search.View()
	case nav.ScreenOffer:
		return m.offer.View()
	case nav.ScreenRideDetails:
		return m.rideDetails.View()
	case nav.ScreenLocationPermission:
		return m.location.View()
	case nav.ScreenFreeTrips:
		return m.freeTrips.View()
	case nav.ScreenRideHistory:
		return m.rideHistory.View()
	case nav.ScreenRewards:
		return m.rewards.View()
	case nav.ScreenHelp:
		return m.help.View()
	case nav.ScreenFrndCircles:
		return m.circles.View()
	case nav.ScreenAccount:
		return m.account.View()
	}
	return ""
}

// ScreenCovered reports whether the app model has a page for the screen.
// A test walks nav.Screens through it so a new screen cannot ship without a
// view mapping.
func ScreenCovered(screen nav.Screen) bool {
	switch screen {
	case nav.ScreenSplash, nav.ScreenLogin, nav.ScreenHome, nav.ScreenSearch,
		nav.ScreenOffer, nav.ScreenRideDetails, nav.ScreenLocationPermission,
		nav.ScreenFreeTrips, nav.ScreenRideHistory, nav.ScreenRewards,
		nav.ScreenHelp, nav.ScreenFrndCircles, nav.ScreenAccount:
		return true
	}
	return false
}
