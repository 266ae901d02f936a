package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
)

var mockNotifications = []models.Notification{
	{ID: "1", Title: "Ride reminder", Body: "Karan leaves for Whitefield in 20 minutes.", Time: "2m ago"},
	{ID: "2", Title: "Points credited", Body: "You earned 45 Pts for yesterday's ride.", Time: "1h ago"},
	{ID: "3", Title: "Circle update", Body: "Sneha joined your Office Commute circle.", Time: "3h ago"},
}

// HomeModel is the landing screen: greeting, quick actions, and the
// notification overlay.
type HomeModel struct {
	ctrl        *nav.Controller
	isNotifOpen bool
	width       int
	height      int
}

func NewHomeModel(ctrl *nav.Controller) HomeModel {
	return HomeModel{ctrl: ctrl}
}

func (m HomeModel) Init() tea.Cmd {
	return nil
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.isNotifOpen {
			m.isNotifOpen = false
			return m, nil
		}
		switch msg.String() {
		case "f":
			m.ctrl.RequestRideSearch()
		case "o":
			m.ctrl.GoTo(nav.ScreenOffer)
		case "t":
			m.ctrl.GoTo(nav.ScreenFreeTrips)
		case "c":
			m.ctrl.GoTo(nav.ScreenFrndCircles)
		case "a":
			m.ctrl.GoTo(nav.ScreenAccount)
		case "n":
			m.isNotifOpen = true
		case "m":
			m.ctrl.OpenSidebar()
		}
	}
	return m, nil
}

func (m HomeModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := newStyles(m.ctrl.State().IsDarkMode)
	p := m.ctrl.Profile()

	if m.isNotifOpen {
		var sb strings.Builder
		sb.WriteString(s.title.Render("Notifications"))
		sb.WriteString("\n\n")
		for _, n := range mockNotifications {
			sb.WriteString(s.card.Render(lipgloss.JoinVertical(lipgloss.Left,
				s.header.Render(n.Title)+"  "+s.faint.Render(n.Time),
				s.body.Render(n.Body),
			)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(s.help.Render("Press any key to close"))
		return docStyle.Render(sb.String())
	}

	greeting := s.header.Render(fmt.Sprintf("Hello, %s", p.Name))
	stats := s.faint.Render(fmt.Sprintf("%d Pts · %d rides", p.Points, p.Rides))

	actions := lipgloss.JoinVertical(lipgloss.Left,
		s.selected.Render("Find a Ride      (f)"),
		s.card.Render("Offer a Ride     (o)"),
		s.card.Render("Free Trips       (t)"),
		s.card.Render("Friend Circles   (c)"),
		s.card.Render("Account          (a)"),
	)

	var sb strings.Builder
	sb.WriteString(s.title.Render("pathshare"))
	sb.WriteString("\n\n")
	sb.WriteString(greeting)
	sb.WriteString("\n")
	sb.WriteString(stats)
	sb.WriteString("\n\n")
	sb.WriteString(actions)
	sb.WriteString("\n\n")
	sb.WriteString(s.help.Render("(n) Notifications | (m) Menu | (ctrl+c) Quit"))

	return docStyle.Render(sb.String())
}
