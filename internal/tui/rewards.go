package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/nav"
)

type rewardProduct struct {
	name   string
	points int
	tag    string
}

type rewardActivity struct {
	title  string
	points string
	date   string
}

var marketplace = []rewardProduct{
	{name: "Starbucks Coffee", points: 400, tag: "Limited Time"},
	{name: "Eco-Friendly Bottle", points: 800, tag: "Staff Pick"},
	{name: "Amazon 20% Off", points: 300, tag: "Hot Deal"},
	{name: "PathShare T-Shirt", points: 1200, tag: "Exclusive"},
}

var recentActivity = []rewardActivity{
	{title: "Ride with Karan", points: "+35", date: "Today"},
	{title: "Referral Bonus", points: "+100", date: "Yesterday"},
	{title: "Coffee Voucher", points: "-400", date: "2 days ago"},
}

// RewardsModel shows the points balance, marketplace, and recent activity.
type RewardsModel struct {
	ctrl   *nav.Controller
	width  int
	height int
}

func NewRewardsModel(ctrl *nav.Controller) RewardsModel {
	return RewardsModel{ctrl: ctrl}
}

func (m RewardsModel) Init() tea.Cmd {
	return nil
}

func (m RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m RewardsModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)
	p := m.ctrl.Profile()

	var sb strings.Builder
	sb.WriteString(s.title.Render("Rewards"))
	sb.WriteString("\n\n")
	sb.WriteString(s.selected.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.faint.Render("TOTAL PATHPOINTS"),
		s.header.Render(fmt.Sprintf("%d", p.Points)),
		s.faint.Render("Next Milestone: Gold Member"),
	)))
	sb.WriteString("\n\n")

	sb.WriteString(s.faint.Render("MARKETPLACE"))
	sb.WriteString("\n")
	for _, prod := range marketplace {
		sb.WriteString(s.card.Render(
			s.body.Render(fmt.Sprintf("%-22s %4d Pts  ", prod.name, prod.points)) + s.accent.Render(prod.tag),
		))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.faint.Render("RECENT ACTIVITY"))
	sb.WriteString("\n")
	for _, act := range recentActivity {
		sb.WriteString(s.body.Render(fmt.Sprintf("%-22s %5s  %s", act.title, act.points, act.date)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(esc) Back"))

	return docStyle.Render(sb.String())
}
