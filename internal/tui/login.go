package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathshare/pathshare/internal/nav"
)

const authTimeout = 30 * time.Second

// authResultMsg carries the outcome of a sign-in or sign-up attempt.
type authResultMsg struct {
	signUp bool
	err    error
}

// oauthURLMsg carries the authorize URL for the redirect-based flow.
type oauthURLMsg struct {
	url string
	err error
}

// LoginModel is the combined sign-in / sign-up screen. Auth failures render
// inline and are never retried automatically.
type LoginModel struct {
	ctrl *nav.Controller

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int

	isSignUp bool
	loading  bool
	errMsg   string
	infoMsg  string
	oauthURL string
	width    int
	height   int
}

func NewLoginModel(ctrl *nav.Controller) LoginModel {
	name := textinput.New()
	name.Placeholder = "Full Name"
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "Email Address"
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return LoginModel{
		ctrl:     ctrl,
		name:     name,
		email:    email,
		password: password,
		focus:    1,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if msg.signUp {
			m.infoMsg = "Check your email for verification link!"
			return m, nil
		}
		// Navigational nudge only; the auth subscription owns the
		// logged-in flag.
		m.ctrl.LogIn()
		return m, nil

	case oauthURLMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.oauthURL = msg.url
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+t":
			m.isSignUp = !m.isSignUp
			m.errMsg = ""
			m.infoMsg = ""
			return m, nil
		case "ctrl+g":
			if m.loading {
				return m, nil
			}
			m.errMsg = ""
			return m, m.requestOAuthURL()
		case "enter":
			if m.loading {
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.name, cmd = m.name.Update(msg)
	case 1:
		m.email, cmd = m.email.Update(msg)
	case 2:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) cycleFocus(dir int) {
	fields := 3
	first := 0
	if !m.isSignUp {
		first = 1
	}
	m.focus += dir
	if m.focus < first {
		m.focus = fields - 1
	}
	if m.focus >= fields {
		m.focus = first
	}
	m.name.Blur()
	m.email.Blur()
	m.password.Blur()
	switch m.focus {
	case 0:
		m.name.Focus()
	case 1:
		m.email.Focus()
	case 2:
		m.password.Focus()
	}
}

func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.infoMsg = ""

	if m.isSignUp && strings.TrimSpace(m.name.Value()) == "" {
		m.errMsg = "Full name is required for registration"
		return m, nil
	}

	m.loading = true
	ctrl := m.ctrl
	signUp := m.isSignUp
	name := strings.TrimSpace(m.name.Value())
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		var err error
		if signUp {
			err = ctrl.SignUp(ctx, email, password, name)
		} else {
			err = ctrl.SignInWithPassword(ctx, email, password)
		}
		return authResultMsg{signUp: signUp, err: err}
	}
}

func (m LoginModel) requestOAuthURL() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		url, err := ctrl.OAuthSignInURL("google")
		return oauthURLMsg{url: url, err: err}
	}
}

func (m LoginModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)

	heading := "Welcome back."
	action := "Sign In"
	toggleHint := "New here? Create an account (ctrl+t)"
	if m.isSignUp {
		heading = "Create account."
		action = "Create Account"
		toggleHint = "Already have an account? Sign In (ctrl+t)"
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render("pathshare"))
	sb.WriteString("\n\n")
	sb.WriteString(s.header.Render(heading))
	sb.WriteString("\n")
	sb.WriteString(s.faint.Render("Save fuel, reduce traffic, and meet your community."))
	sb.WriteString("\n\n")

	if m.isSignUp {
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.email.View())
	sb.WriteString("\n")
	sb.WriteString(m.password.View())
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(s.faint.Render("Authenticating..."))
		sb.WriteString("\n")
	}
	if m.errMsg != "" {
		sb.WriteString(s.danger.Render(m.errMsg))
		sb.WriteString("\n")
	}
	if m.infoMsg != "" {
		sb.WriteString(s.success.Render(m.infoMsg))
		sb.WriteString("\n")
	}
	if m.oauthURL != "" {
		sb.WriteString(s.body.Render("Open this URL to continue with Google:"))
		sb.WriteString("\n")
		sb.WriteString(s.accent.Render(m.oauthURL))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.help.Render("(enter) " + action + " | (ctrl+g) Continue with Google | " + toggleHint))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sb.String()))
}
