package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
)

var mockHistory = []models.HistoryEntry{
	{ID: "1", Date: "Oct 14, 2023", From: "Indiranagar", To: "Whitefield", Points: "45 Pts", Vehicle: "Royal Enfield Classic", Status: "Completed"},
	{ID: "2", Date: "Oct 12, 2023", From: "HSR Layout", To: "Koramangala", Points: "30 Pts", Vehicle: "Activa 6G", Status: "Completed"},
	{ID: "3", Date: "Oct 11, 2023", From: "Whitefield", To: "Indiranagar", Points: "55 Pts", Vehicle: "Honda City", Status: "Completed"},
}

// RideHistoryModel lists past rides.
type RideHistoryModel struct {
	ctrl   *nav.Controller
	width  int
	height int
}

func NewRideHistoryModel(ctrl *nav.Controller) RideHistoryModel {
	return RideHistoryModel{ctrl: ctrl}
}

func (m RideHistoryModel) Init() tea.Cmd {
	return nil
}

func (m RideHistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.ctrl.GoTo(nav.ScreenHome)
		}
	}
	return m, nil
}

func (m RideHistoryModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	var sb strings.Builder
	sb.WriteString(s.title.Render("Ride History"))
	sb.WriteString("\n\n")
	for _, entry := range mockHistory {
		sb.WriteString(s.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.header.Render(fmt.Sprintf("%s → %s", entry.From, entry.To)),
			s.body.Render(fmt.Sprintf("%s · %s · %s", entry.Date, entry.Vehicle, entry.Points)),
			s.faint.Render(entry.Status),
		)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(esc) Back"))

	return docStyle.Render(sb.String())
}
