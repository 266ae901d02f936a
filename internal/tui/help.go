package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/nav"
	"github.com/pathshare/pathshare/internal/support"
)

var faqs = []struct {
	q string
	a string
}{
	{"How do points work?", "You earn PathPoints for every shared ride and can spend them in the rewards marketplace."},
	{"Is my route visible to strangers?", "No. Only members of your friend circles can see your activity."},
	{"How do I verify my identity?", "Open Account and upload a government id; verification usually takes a day."},
}

// chatReplyMsg carries the assistant's reply, or the failure.
type chatReplyMsg struct {
	text string
	err  error
}

// HelpModel is the help screen: FAQ plus the live AI support chat.
type HelpModel struct {
	ctrl *nav.Controller
	chat *support.Chat

	showLiveChat bool
	messages     []support.Message
	input        textinput.Model
	isTyping     bool
	width        int
	height       int
}

func NewHelpModel(ctrl *nav.Controller, chat *support.Chat) HelpModel {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.Width = 40

	return HelpModel{
		ctrl:     ctrl,
		chat:     chat,
		messages: []support.Message{{ID: "start", Text: support.Greeting}},
		input:    input,
	}
}

func (m HelpModel) Init() tea.Cmd {
	return nil
}

func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case chatReplyMsg:
		m.isTyping = false
		text := msg.text
		if msg.err != nil || text == "" {
			text = support.FallbackReply
		}
		m.messages = append(m.messages, support.NewMessage(text, false))
		return m, nil

	case tea.KeyMsg:
		if m.showLiveChat {
			switch msg.String() {
			case "esc":
				m.showLiveChat = false
				m.input.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				if text == "" || m.isTyping {
					return m, nil
				}
				m.messages = append(m.messages, support.NewMessage(text, true))
				m.input.SetValue("")
				m.isTyping = true
				return m, m.send(text)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			m.ctrl.GoTo(nav.ScreenHome)
		case "l":
			m.showLiveChat = true
			return m, tea.Batch(m.input.Focus(), textinput.Blink)
		}
	}
	return m, nil
}

// send relays the message with the history up to (but not including) the
// just-appended user bubble, matching the request/response-only contract.
func (m HelpModel) send(text string) tea.Cmd {
	chat := m.chat
	history := make([]support.Message, len(m.messages)-1)
	copy(history, m.messages[:len(m.messages)-1])

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		reply, err := chat.Send(ctx, history, text)
		return chatReplyMsg{text: reply, err: err}
	}
}

func (m HelpModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	if m.showLiveChat {
		var sb strings.Builder
		sb.WriteString(s.title.Render("Live Support"))
		sb.WriteString("\n\n")
		for _, message := range m.messages {
			if message.IsUser {
				sb.WriteString(s.accent.Render("You: "))
			} else {
				sb.WriteString(s.header.Render("PathShare: "))
			}
			sb.WriteString(s.body.Render(message.Text))
			sb.WriteString("\n")
		}
		if m.isTyping {
			sb.WriteString(s.faint.Render("PathShare is typing..."))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		sb.WriteString(s.help.Render("(enter) Send | (esc) Close chat"))
		return docStyle.Render(sb.String())
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("Help"))
	sb.WriteString("\n\n")
	for _, faq := range faqs {
		sb.WriteString(s.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.header.Render(faq.q),
			s.body.Render(faq.a),
		)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(l) Live support chat | (esc) Back"))

	return docStyle.Render(sb.String())
}
