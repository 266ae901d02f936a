package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/nav"
)

// LocationModel is the permission gate shown before the first ride search.
// Both choices proceed to search; deny just means "continue without
// location".
type LocationModel struct {
	ctrl   *nav.Controller
	width  int
	height int
}

func NewLocationModel(ctrl *nav.Controller) LocationModel {
	return LocationModel{ctrl: ctrl}
}

func (m LocationModel) Init() tea.Cmd {
	return nil
}

func (m LocationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "a", "enter":
			m.ctrl.GrantLocationPermission()
		case "d", "esc":
			m.ctrl.DenyLocationPermission()
		}
	}
	return m, nil
}

func (m LocationModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	var sb strings.Builder
	sb.WriteString(s.title.Render("Enable Location"))
	sb.WriteString("\n\n")
	sb.WriteString(s.body.Render("PathShare matches you with rides near your current location."))
	sb.WriteString("\n")
	sb.WriteString(s.faint.Render("You can still search without sharing your location."))
	sb.WriteString("\n\n")
	sb.WriteString(s.help.Render("(a) Allow | (d) Not now"))

	return docStyle.Render(sb.String())
}
