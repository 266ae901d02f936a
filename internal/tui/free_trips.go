package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/nav"
)

const inviteCode = "PATH-RIDE-50"

// copyResetMsg clears the copied confirmation.
type copyResetMsg struct{}

// FreeTripsModel is the referral screen.
type FreeTripsModel struct {
	ctrl        *nav.Controller
	copySuccess bool
	width       int
	height      int
}

func NewFreeTripsModel(ctrl *nav.Controller) FreeTripsModel {
	return FreeTripsModel{ctrl: ctrl}
}

func (m FreeTripsModel) Init() tea.Cmd {
	return nil
}

func (m FreeTripsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case copyResetMsg:
		m.copySuccess = false

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenHome)
		case "c":
			m.copySuccess = true
			return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
				return copyResetMsg{}
			})
		}
	}
	return m, nil
}

func (m FreeTripsModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	var sb strings.Builder
	sb.WriteString(s.title.Render("Free Trips"))
	sb.WriteString("\n\n")
	sb.WriteString(s.body.Render("Invite friends and you both ride free."))
	sb.WriteString("\n\n")
	sb.WriteString(s.selected.Render(s.accent.Render(inviteCode)))
	sb.WriteString("\n\n")
	if m.copySuccess {
		sb.WriteString(s.success.Render("Copied! Use my code " + inviteCode + " to get your first ride free!"))
		sb.WriteString("\n")
	}
	sb.WriteString(s.help.Render("(c) Copy code | (esc) Back"))

	return docStyle.Render(sb.String())
}
