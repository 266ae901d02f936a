package models

// VehicleType is the kind of vehicle a match drives.
type VehicleType string

const (
	VehicleBike VehicleType = "Bike"
	VehicleCar  VehicleType = "Car"
)

// RideMatch is a single candidate ride shown in the search results.
type RideMatch struct {
	ID           string
	Name         string
	Avatar       string
	Vehicle      VehicleType
	VehicleModel string
	Rating       float64
	Points       int
	ETA          string
	Route        string
	IsFriend     bool
	IsMutual     bool
	IsWoman      bool
}

// RideStatus is the live-trip progression shown on the details screen.
type RideStatus string

const (
	StatusSearching   RideStatus = "Searching"
	StatusApproaching RideStatus = "Approaching"
	StatusArrived     RideStatus = "Arrived"
	StatusOnTheWay    RideStatus = "On the way"
	StatusCompleted   RideStatus = "Completed"
)

// Stages lists the progression order for rendering the status rail.
var Stages = []RideStatus{
	StatusSearching,
	StatusApproaching,
	StatusArrived,
	StatusOnTheWay,
	StatusCompleted,
}

// RideOffer is a ride posted by the current user from the offer screen.
type RideOffer struct {
	ID      string
	Vehicle VehicleType
	Seats   string
	From    string
	To      string
	Time    string
}

// HistoryEntry is one completed ride in the history list.
type HistoryEntry struct {
	ID      string
	Date    string
	From    string
	To      string
	Points  string
	Vehicle string
	Status  string
}

// Notification is one row in the home screen overlay.
type Notification struct {
	ID    string
	Title string
	Body  string
	Time  string
}
