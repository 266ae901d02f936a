package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/nav"
)

// SplashModel is the startup screen. It owns no local state; the timeout
// that advances past it lives in the navigation controller.
type SplashModel struct {
	ctrl   *nav.Controller
	width  int
	height int
}

func NewSplashModel(ctrl *nav.Controller) SplashModel {
	return SplashModel{ctrl: ctrl}
}

func (m SplashModel) Init() tea.Cmd {
	return nil
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		// Any key skips straight to login when not signed in.
		if !m.ctrl.State().IsLoggedIn {
			m.ctrl.GoTo(nav.ScreenLogin)
		}
	}
	return m, nil
}

func (m SplashModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := newStyles(m.ctrl.State().IsDarkMode)
	logo := lipgloss.JoinHorizontal(lipgloss.Top,
		s.body.Bold(true).Render("path"),
		s.accent.Render("share"),
	)
	tagline := s.faint.Render("Save fuel, reduce traffic, and meet your community.")

	content := lipgloss.JoinVertical(lipgloss.Center, logo, "", tagline)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
