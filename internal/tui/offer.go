package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pathshare/pathshare/internal/logger"
	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
	"go.uber.org/zap"
)

const offerPostDelay = 1500 * time.Millisecond

// offerPostedMsg completes the simulated post.
type offerPostedMsg struct{}

// offerDoneMsg returns to home after the success flash.
type offerDoneMsg struct{}

var seatChoices = []string{"1 Seat", "2 Seats", "3 Seats"}

// OfferModel is the post-a-ride form. Posting is simulated; the offer only
// exists client-side.
type OfferModel struct {
	ctrl *nav.Controller

	vehicle   models.VehicleType
	seatIdx   int
	from      textinput.Model
	to        textinput.Model
	time      textinput.Model
	focus     int
	isPosting bool
	isSuccess bool
	width     int
	height    int
}

func NewOfferModel(ctrl *nav.Controller) OfferModel {
	from := textinput.New()
	from.Placeholder = "From"
	from.Width = 40
	from.Focus()

	to := textinput.New()
	to.Placeholder = "To"
	to.Width = 40

	timeInput := textinput.New()
	timeInput.Placeholder = "Departure time (e.g. 5:30 PM)"
	timeInput.Width = 40

	return OfferModel{
		ctrl:    ctrl,
		vehicle: models.VehicleCar,
		from:    from,
		to:      to,
		time:    timeInput,
	}
}

func (m OfferModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m OfferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case offerPostedMsg:
		offer := models.RideOffer{
			ID:      uuid.NewString(),
			Vehicle: m.vehicle,
			Seats:   seatChoices[m.seatIdx],
			From:    m.from.Value(),
			To:      m.to.Value(),
			Time:    m.time.Value(),
		}
		logger.Info("ride offer posted", zap.String("offer_id", offer.ID), zap.String("from", offer.From), zap.String("to", offer.To))
		m.isPosting = false
		m.isSuccess = true
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return offerDoneMsg{}
		})

	case offerDoneMsg:
		m.ctrl.GoTo(nav.ScreenHome)
		return m, nil

	case tea.KeyMsg:
		if m.isPosting || m.isSuccess {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenHome)
			return m, nil
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+v":
			if m.vehicle == models.VehicleCar {
				m.vehicle = models.VehicleBike
			} else {
				m.vehicle = models.VehicleCar
			}
			return m, nil
		case "ctrl+s":
			m.seatIdx = (m.seatIdx + 1) % len(seatChoices)
			return m, nil
		case "enter":
			if strings.TrimSpace(m.from.Value()) == "" || strings.TrimSpace(m.to.Value()) == "" {
				return m, nil
			}
			m.isPosting = true
			return m, tea.Tick(offerPostDelay, func(time.Time) tea.Msg {
				return offerPostedMsg{}
			})
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.from, cmd = m.from.Update(msg)
	case 1:
		m.to, cmd = m.to.Update(msg)
	case 2:
		m.time, cmd = m.time.Update(msg)
	}
	return m, cmd
}

func (m *OfferModel) cycleFocus(dir int) {
	m.focus = (m.focus + dir + 3) % 3
	m.from.Blur()
	m.to.Blur()
	m.time.Blur()
	switch m.focus {
	case 0:
		m.from.Focus()
	case 1:
		m.to.Focus()
	case 2:
		m.time.Focus()
	}
}

func (m OfferModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	if m.isSuccess {
		return docStyle.Render(s.success.Render("Ride posted! Your co-travellers will be notified."))
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("Offer a Ride"))
	sb.WriteString("\n\n")
	sb.WriteString(s.body.Render("Vehicle: "))
	sb.WriteString(s.accent.Render(string(m.vehicle)))
	sb.WriteString(s.faint.Render("  (ctrl+v)"))
	sb.WriteString("   ")
	sb.WriteString(s.body.Render("Seats: "))
	sb.WriteString(s.accent.Render(seatChoices[m.seatIdx]))
	sb.WriteString(s.faint.Render("  (ctrl+s)"))
	sb.WriteString("\n\n")
	sb.WriteString(m.from.View())
	sb.WriteString("\n")
	sb.WriteString(m.to.View())
	sb.WriteString("\n")
	sb.WriteString(m.time.View())
	sb.WriteString("\n\n")
	if m.isPosting {
		sb.WriteString(s.faint.Render("Posting your ride..."))
		sb.WriteString("\n")
	}
	sb.WriteString(s.help.Render("(enter) Post | (esc) Back"))

	return docStyle.Render(sb.String())
}
