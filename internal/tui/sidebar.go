package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/nav"
)

type sidebarItem struct {
	label  string
	screen nav.Screen
}

var sidebarItems = []sidebarItem{
	{label: "Account", screen: nav.ScreenAccount},
	{label: "Ride History", screen: nav.ScreenRideHistory},
	{label: "Free Trips", screen: nav.ScreenFreeTrips},
	{label: "Rewards", screen: nav.ScreenRewards},
	{label: "FrndCircles", screen: nav.ScreenFrndCircles},
	{label: "Help", screen: nav.ScreenHelp},
}

// SidebarModel is the profile drawer: nav shortcuts, the dark-mode toggle,
// and logout. Navigating closes the drawer in the same controller call.
type SidebarModel struct {
	ctrl   *nav.Controller
	cursor int
	width  int
	height int
}

func NewSidebarModel(ctrl *nav.Controller) SidebarModel {
	return SidebarModel{ctrl: ctrl}
}

func (m SidebarModel) Init() tea.Cmd {
	return nil
}

func (m SidebarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "m":
			m.ctrl.CloseSidebar()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(sidebarItems)-1 {
				m.cursor++
			}
		case "enter":
			m.ctrl.NavigateFromSidebar(sidebarItems[m.cursor].screen)
		case "d":
			m.ctrl.ToggleDarkMode()
		case "x":
			return m, m.logOut()
		}
	}
	return m, nil
}

// logOut runs the network sign-out as a command so a slow store cannot
// freeze the update loop.
func (m SidebarModel) logOut() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ctrl.LogOut(ctx)
		return nil
	}
}

func (m SidebarModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)
	p := m.ctrl.Profile()

	mode := "Light"
	if m.ctrl.State().IsDarkMode {
		mode = "Dark"
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("Menu"))
	sb.WriteString("\n\n")
	sb.WriteString(s.header.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(s.faint.Render(fmt.Sprintf("%d Pts · %d rides", p.Points, p.Rides)))
	sb.WriteString("\n\n")

	for i, item := range sidebarItems {
		if i == m.cursor {
			sb.WriteString(s.selected.Render(item.label))
		} else {
			sb.WriteString(s.card.Render(item.label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.body.Render("Theme: "))
	sb.WriteString(s.accent.Render(mode))
	sb.WriteString(s.faint.Render("  (d) toggle"))
	sb.WriteString("\n\n")
	sb.WriteString(s.help.Render("(enter) Open | (x) Log out | (esc) Close"))

	return docStyle.Render(sb.String())
}
