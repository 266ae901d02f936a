package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/nav"
	"github.com/pathshare/pathshare/internal/profile"
)

var genderChoices = []profile.Gender{
	profile.GenderMale,
	profile.GenderFemale,
	profile.GenderNonBinary,
	profile.GenderUnspecified,
}

// profileSavedMsg carries the outcome of a profile save.
type profileSavedMsg struct {
	err error
}

// AccountModel shows the profile and an edit form. A failed save keeps the
// form values and offers a retry instead of silently dropping the edit.
type AccountModel struct {
	ctrl *nav.Controller

	isEditing bool
	isSaving  bool
	saveErr   string
	name      textinput.Model
	phone     textinput.Model
	bio       textinput.Model
	gender    profile.Gender
	focus     int
	width     int
	height    int
}

func NewAccountModel(ctrl *nav.Controller) AccountModel {
	name := textinput.New()
	name.Width = 40
	phone := textinput.New()
	phone.Width = 40
	bio := textinput.New()
	bio.Width = 40

	return AccountModel{ctrl: ctrl, name: name, phone: phone, bio: bio}
}

func (m AccountModel) Init() tea.Cmd {
	return nil
}

func (m AccountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileSavedMsg:
		m.isSaving = false
		if msg.err != nil {
			m.saveErr = "Could not save your changes. Press enter to retry."
			return m, nil
		}
		m.isEditing = false
		m.saveErr = ""
		return m, nil

	case tea.KeyMsg:
		if !m.isEditing {
			switch msg.String() {
			case "esc":
				m.ctrl.GoTo(nav.ScreenHome)
			case "e":
				m.startEditing()
				return m, textinput.Blink
			}
			return m, nil
		}

		if m.isSaving {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.isEditing = false
			m.saveErr = ""
			return m, nil
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+g":
			for i, g := range genderChoices {
				if g == m.gender {
					m.gender = genderChoices[(i+1)%len(genderChoices)]
					break
				}
			}
			return m, nil
		case "enter":
			m.isSaving = true
			m.saveErr = ""
			return m, m.save()
		}

		var cmd tea.Cmd
		switch m.focus {
		case 0:
			m.name, cmd = m.name.Update(msg)
		case 1:
			m.phone, cmd = m.phone.Update(msg)
		case 2:
			m.bio, cmd = m.bio.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *AccountModel) startEditing() {
	p := m.ctrl.Profile()
	m.isEditing = true
	m.focus = 0
	m.gender = p.Gender
	m.name.SetValue(p.Name)
	m.phone.SetValue(p.Phone)
	m.bio.SetValue(p.Bio)
	m.name.Focus()
	m.phone.Blur()
	m.bio.Blur()
}

func (m *AccountModel) cycleFocus(dir int) {
	m.focus = (m.focus + dir + 3) % 3
	m.name.Blur()
	m.phone.Blur()
	m.bio.Blur()
	switch m.focus {
	case 0:
		m.name.Focus()
	case 1:
		m.phone.Focus()
	case 2:
		m.bio.Focus()
	}
}

func (m AccountModel) save() tea.Cmd {
	ctrl := m.ctrl
	name := m.name.Value()
	phone := m.phone.Value()
	bio := m.bio.Value()
	gender := m.gender

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := ctrl.UpdateProfile(ctx, profile.Patch{
			Name:   &name,
			Phone:  &phone,
			Bio:    &bio,
			Gender: &gender,
		})
		return profileSavedMsg{err: err}
	}
}

func (m AccountModel) View() string {
	s := newStyles(m.ctrl.State().IsDarkMode)
	p := m.ctrl.Profile()

	var sb strings.Builder
	sb.WriteString(s.title.Render("Account"))
	sb.WriteString("\n\n")

	if m.isEditing {
		sb.WriteString(s.body.Render("Name:  "))
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
		sb.WriteString(s.body.Render("Phone: "))
		sb.WriteString(m.phone.View())
		sb.WriteString("\n")
		sb.WriteString(s.body.Render("Bio:   "))
		sb.WriteString(m.bio.View())
		sb.WriteString("\n")
		sb.WriteString(s.body.Render("Gender: "))
		sb.WriteString(s.accent.Render(string(m.gender)))
		sb.WriteString(s.faint.Render("  (ctrl+g)"))
		sb.WriteString("\n\n")
		if m.isSaving {
			sb.WriteString(s.faint.Render("Saving..."))
			sb.WriteString("\n")
		}
		if m.saveErr != "" {
			sb.WriteString(s.danger.Render(m.saveErr))
			sb.WriteString("\n")
		}
		sb.WriteString(s.help.Render("(enter) Save | (esc) Cancel"))
		return docStyle.Render(sb.String())
	}

	verified := "Not verified"
	if p.IsGovVerified {
		verified = "Gov ID verified"
	}

	sb.WriteString(s.header.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(s.body.Render(p.Email))
	sb.WriteString("\n")
	if p.Phone != "" {
		sb.WriteString(s.body.Render(p.Phone))
		sb.WriteString("\n")
	}
	sb.WriteString(s.body.Render(string(p.Gender)))
	sb.WriteString("\n")
	sb.WriteString(s.faint.Render(p.Bio))
	sb.WriteString("\n\n")
	sb.WriteString(s.body.Render(fmt.Sprintf("%d Pts · %d rides · %s", p.Points, p.Rides, verified)))
	sb.WriteString("\n\n")
	sb.WriteString(s.help.Render("(e) Edit profile | (esc) Back"))

	return docStyle.Render(sb.String())
}
