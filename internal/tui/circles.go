package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/nav"
)

type circlesTab string

const (
	tabFeed    circlesTab = "Feed"
	tabCircles circlesTab = "Circles"
	tabPrivacy circlesTab = "Privacy"
)

var circlesTabs = []circlesTab{tabFeed, tabCircles, tabPrivacy}

type friendOnRoad struct {
	name     string
	relation string
	route    string
	time     string
	degree   string
}

var friendsOnRoad = []friendOnRoad{
	{name: "Rahul V.", relation: "Contact", route: "Indiranagar → HSR", time: "Active Now", degree: "1st"},
	{name: "Sneha K.", relation: "Mutual (via Priya)", route: "Koramangala → Embassy Tech Village", time: "10 mins ago", degree: "2nd"},
	{name: "Amit Singh", relation: "Contact", route: "Hebbal → Manyata", time: "Active Now", degree: "1st"},
}

// pingResetMsg clears the ping confirmation.
type pingResetMsg struct{}

// CirclesModel is the friend-circle social screen.
type CirclesModel struct {
	ctrl     *nav.Controller
	tab      circlesTab
	pingSent bool
	width    int
	height   int
}

func NewCirclesModel(ctrl *nav.Controller) CirclesModel {
	return CirclesModel{ctrl: ctrl, tab: tabFeed}
}

func (m CirclesModel) Init() tea.Cmd {
	return nil
}

func (m CirclesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pingResetMsg:
		m.pingSent = false

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenHome)
		case "tab":
			for i, t := range circlesTabs {
				if t == m.tab {
					m.tab = circlesTabs[(i+1)%len(circlesTabs)]
					break
				}
			}
		case "p":
			if m.tab == tabFeed {
				m.pingSent = true
				return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
					return pingResetMsg{}
				})
			}
		}
	}
	return m, nil
}

func (m CirclesModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	var tabs []string
	for _, t := range circlesTabs {
		if t == m.tab {
			tabs = append(tabs, s.tabActive.Render(string(t)))
		} else {
			tabs = append(tabs, s.tabInactive.Render(string(t)))
		}
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("FrndCircles"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	switch m.tab {
	case tabFeed:
		sb.WriteString(s.faint.Render("FRIENDS ON THE ROAD"))
		sb.WriteString("\n")
		for _, f := range friendsOnRoad {
			sb.WriteString(s.card.Render(lipgloss.JoinVertical(lipgloss.Left,
				s.header.Render(f.name)+"  "+s.faint.Render(f.degree+" · "+f.relation),
				s.body.Render(f.route),
				s.faint.Render(f.time),
			)))
			sb.WriteString("\n")
		}
		if m.pingSent {
			sb.WriteString(s.success.Render("Ping sent! Your friends will see you're heading out."))
			sb.WriteString("\n")
		}
	case tabCircles:
		sb.WriteString(s.card.Render(s.body.Render("Office Commute · 8 members")))
		sb.WriteString("\n")
		sb.WriteString(s.card.Render(s.body.Render("Weekend Trips · 12 members")))
		sb.WriteString("\n")
	case tabPrivacy:
		sb.WriteString(s.body.Render(fmt.Sprintf("Route visibility: %s", "Friends only")))
		sb.WriteString("\n")
		sb.WriteString(s.faint.Render("Only people in your circles can see your activity."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(tab) Switch tab | (p) Quick ping | (esc) Back"))

	return docStyle.Render(sb.String())
}
