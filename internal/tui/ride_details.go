package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
)

const (
	arrivalDelay      = 5 * time.Second
	feedbackDelay     = 2 * time.Second
	sosCountdownStart = 3
)

// statusAdvanceMsg moves the simulated trip from Approaching to Arrived.
type statusAdvanceMsg struct{}

// feedbackMsg opens the feedback modal after completion.
type feedbackMsg struct{}

// sosTickMsg decrements the SOS countdown.
type sosTickMsg struct{}

// RideDetailsModel is the live trip screen: a linear status progression on
// fixed-delay timers, the SOS overlay, and the post-ride feedback modal.
type RideDetailsModel struct {
	ctrl *nav.Controller

	status       models.RideStatus
	showFeedback bool
	rating       int
	comment      textinput.Model
	submitted    bool

	isPanicMode  bool
	sosCountdown int

	width  int
	height int
}

func NewRideDetailsModel(ctrl *nav.Controller) RideDetailsModel {
	comment := textinput.New()
	comment.Placeholder = "Anything to add?"
	comment.Width = 40

	return RideDetailsModel{
		ctrl:         ctrl,
		status:       models.StatusApproaching,
		comment:      comment,
		sosCountdown: sosCountdownStart,
	}
}

func (m RideDetailsModel) Init() tea.Cmd {
	return tea.Tick(arrivalDelay, func(time.Time) tea.Msg {
		return statusAdvanceMsg{}
	})
}

func (m RideDetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusAdvanceMsg:
		if m.status == models.StatusApproaching {
			m.status = models.StatusArrived
		}
		return m, nil

	case feedbackMsg:
		m.showFeedback = true
		return m, nil

	case sosTickMsg:
		if m.isPanicMode && m.sosCountdown > 0 {
			m.sosCountdown--
			if m.sosCountdown > 0 {
				return m, sosTick()
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.isPanicMode {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.isPanicMode = false
				m.sosCountdown = sosCountdownStart
			}
			return m, nil
		}
		if m.showFeedback {
			return m.updateFeedback(msg)
		}
		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenSearch)
		case "s":
			if m.status == models.StatusArrived {
				m.status = models.StatusOnTheWay
			}
		case "c":
			if m.status == models.StatusOnTheWay {
				m.status = models.StatusCompleted
				return m, tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
					return feedbackMsg{}
				})
			}
		case "x":
			m.isPanicMode = true
			m.sosCountdown = sosCountdownStart
			return m, sosTick()
		}
	}

	return m, nil
}

func sosTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return sosTickMsg{}
	})
}

func (m RideDetailsModel) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4", "5":
		m.rating = int(msg.Runes[0] - '0')
		return m, nil
	case "enter":
		m.submitted = true
		m.ctrl.GoTo(nav.ScreenSearch)
		return m, nil
	case "esc":
		m.ctrl.GoTo(nav.ScreenSearch)
		return m, nil
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m RideDetailsModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	if m.isPanicMode {
		var sb strings.Builder
		sb.WriteString(s.danger.Render("SOS ACTIVE"))
		sb.WriteString("\n")
		sb.WriteString(s.body.Render("Broadcasting location to Police & Contacts"))
		sb.WriteString("\n\n")
		if m.sosCountdown > 0 {
			sb.WriteString(s.danger.Render(fmt.Sprintf("Calling emergency services in %d...", m.sosCountdown)))
		} else {
			sb.WriteString(s.body.Render("Live location sent to +91 98765 43210 (Sister)"))
			sb.WriteString("\n")
			sb.WriteString(s.success.Render("Police notified of your route"))
		}
		sb.WriteString("\n\n")
		sb.WriteString(s.help.Render("(esc) I AM SAFE - CANCEL"))
		return docStyle.Render(sb.String())
	}

	if m.showFeedback {
		stars := strings.Repeat("★", m.rating) + strings.Repeat("☆", 5-m.rating)
		var sb strings.Builder
		sb.WriteString(s.title.Render("Rate your ride"))
		sb.WriteString("\n\n")
		sb.WriteString(s.accent.Render(stars))
		sb.WriteString("  ")
		sb.WriteString(s.faint.Render("(1-5)"))
		sb.WriteString("\n")
		sb.WriteString(m.comment.View())
		sb.WriteString("\n\n")
		sb.WriteString(s.help.Render("(enter) Submit | (esc) Skip"))
		return docStyle.Render(sb.String())
	}

	ride := m.ctrl.State().SelectedRide
	var rideLine string
	if ride != nil {
		rideLine = fmt.Sprintf("%s · %s · %.1f★ · %s away", ride.Name, ride.VehicleModel, ride.Rating, ride.ETA)
	} else {
		rideLine = "No ride selected"
	}

	var rail []string
	for _, stage := range models.Stages {
		if stage == m.status {
			rail = append(rail, s.tabActive.Render(string(stage)))
		} else {
			rail = append(rail, s.tabInactive.Render(string(stage)))
		}
	}

	hint := ""
	switch m.status {
	case models.StatusArrived:
		hint = "(s) Start trip"
	case models.StatusOnTheWay:
		hint = "(c) Complete ride"
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("Ride Details"))
	sb.WriteString("\n\n")
	sb.WriteString(s.card.Render(s.body.Render(rideLine)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rail...))
	sb.WriteString("\n\n")
	if hint != "" {
		sb.WriteString(s.accent.Render(hint))
		sb.WriteString("\n")
	}
	sb.WriteString(s.help.Render("(x) SOS | (esc) Back"))

	return docStyle.Render(sb.String())
}
