package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
)

var mockMatches = []models.RideMatch{
	{ID: "1", Name: "Sneha Kapur", Vehicle: models.VehicleBike, VehicleModel: "Vespa VXL 150", Rating: 4.9, Points: 35, ETA: "4 mins", IsFriend: true, IsWoman: true},
	{ID: "2", Name: "Ayesha Gupta", Vehicle: models.VehicleCar, VehicleModel: "Honda City", Rating: 4.9, Points: 85, ETA: "12 mins", IsWoman: true},
	{ID: "3", Name: "Priya Sharma", Vehicle: models.VehicleBike, VehicleModel: "TVS iQube", Rating: 4.7, Points: 30, ETA: "8 mins", IsFriend: true, IsMutual: true, IsWoman: true},
	{ID: "4", Name: "Karan Sharma", Vehicle: models.VehicleBike, VehicleModel: "Royal Enfield Classic", Rating: 4.8, Points: 35, ETA: "5 mins", IsFriend: true},
	{ID: "5", Name: "Sameer V.", Vehicle: models.VehicleBike, VehicleModel: "Yamaha FZ", Rating: 4.5, Points: 30, ETA: "3 mins", IsFriend: true, IsMutual: true},
	{ID: "6", Name: "Aditya Raj", Vehicle: models.VehicleCar, VehicleModel: "Maruti Swift", Rating: 4.6, Points: 70, ETA: "15 mins"},
	{ID: "7", Name: "Meera Das", Vehicle: models.VehicleCar, VehicleModel: "Hyundai i20", Rating: 4.8, Points: 75, ETA: "10 mins", IsFriend: true, IsWoman: true},
}

type vehicleFilter string

const (
	filterAll  vehicleFilter = "All"
	filterBike vehicleFilter = "Bike"
	filterCar  vehicleFilter = "Car"
)

// SearchModel lists candidate matches with the women-only and vehicle
// filters. Selecting a match hands it to the controller and opens details.
type SearchModel struct {
	ctrl *nav.Controller

	isWomenOnly bool
	filter      vehicleFilter
	cursor      int
	width       int
	height      int
}

func NewSearchModel(ctrl *nav.Controller) SearchModel {
	return SearchModel{ctrl: ctrl, filter: filterAll}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

// filtered applies both filters over the match list.
func (m SearchModel) filtered() []models.RideMatch {
	var out []models.RideMatch
	for _, match := range mockMatches {
		if m.isWomenOnly && !match.IsWoman {
			continue
		}
		if m.filter != filterAll && string(match.Vehicle) != string(m.filter) {
			continue
		}
		out = append(out, match)
	}
	return out
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		matches := m.filtered()
		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenHome)
		case "w":
			m.isWomenOnly = !m.isWomenOnly
			m.cursor = 0
		case "v":
			switch m.filter {
			case filterAll:
				m.filter = filterBike
			case filterBike:
				m.filter = filterCar
			default:
				m.filter = filterAll
			}
			m.cursor = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(matches)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(matches) {
				ride := matches[m.cursor]
				m.ctrl.SelectRideAndShowDetails(&ride)
			}
		}
	}
	return m, nil
}

func (m SearchModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	womenTab := s.tabInactive.Render("Women Only (w)")
	if m.isWomenOnly {
		womenTab = s.tabActive.Render("Women Only (w)")
	}

	var tabs []string
	for _, f := range []vehicleFilter{filterAll, filterBike, filterCar} {
		if f == m.filter {
			tabs = append(tabs, s.tabActive.Render(string(f)))
		} else {
			tabs = append(tabs, s.tabInactive.Render(string(f)))
		}
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("Find Ride"))
	sb.WriteString("  ")
	sb.WriteString(womenTab)
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("  ")
	sb.WriteString(s.faint.Render("(v) cycle"))
	sb.WriteString("\n\n")

	matches := m.filtered()
	if len(matches) == 0 {
		sb.WriteString(s.faint.Render("No matches for these filters."))
		sb.WriteString("\n")
	}
	for i, match := range matches {
		badges := ""
		if match.IsFriend {
			badges += " · friend"
		}
		if match.IsMutual {
			badges += " · mutual"
		}
		line := lipgloss.JoinVertical(lipgloss.Left,
			s.header.Render(match.Name)+s.faint.Render(badges),
			s.body.Render(fmt.Sprintf("%s · %.1f★ · %d Pts · %s away", match.VehicleModel, match.Rating, match.Points, match.ETA)),
		)
		if i == m.cursor {
			sb.WriteString(s.selected.Render(line))
		} else {
			sb.WriteString(s.card.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(enter) Select | (w) Women only | (v) Vehicle | (esc) Back"))

	return docStyle.Render(sb.String())
}
