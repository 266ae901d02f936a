package nav

// Screen identifies one full-page view. The set is closed; the app model's
// render dispatch covers every member.
type Screen string

const (
	ScreenSplash             Screen = "splash"
	ScreenLogin              Screen = "login"
	ScreenHome               Screen = "home"
	ScreenSearch             Screen = "search"
	ScreenOffer              Screen = "offer"
	ScreenRideDetails        Screen = "ride-details"
	ScreenLocationPermission Screen = "location-permission"
	ScreenFreeTrips          Screen = "free-trips"
	ScreenRideHistory        Screen = "ride-history"
	ScreenRewards            Screen = "rewards"
	ScreenHelp               Screen = "help"
	ScreenFrndCircles        Screen = "frnd-circles"
	ScreenAccount            Screen = "account"
)

// Screens enumerates every screen, in no particular order. The TUI walks it
// to verify that each screen has a page model.
var Screens = []Screen{
	ScreenSplash,
	ScreenLogin,
	ScreenHome,
	ScreenSearch,
	ScreenOffer,
	ScreenRideDetails,
	ScreenLocationPermission,
	ScreenFreeTrips,
	ScreenRideHistory,
	ScreenRewards,
	ScreenHelp,
	ScreenFrndCircles,
	ScreenAccount,
}

// Valid reports whether s is a member of the closed screen set.
func (s Screen) Valid() bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}
