package app

import (
	"strings"

	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	loginEmail = iota
	loginPassword
	loginSubmit
	loginGuest
	loginSignup
	loginItems
)

// loginScreen collects an email and password. Nothing is validated or sent
// anywhere; every way out leads to the home tab.
type loginScreen struct {
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginScreen() *loginScreen {
	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginScreen{email: email, password: password}
}

// reset clears both fields and focuses the email input.
func (l *loginScreen) reset() tea.Cmd {
	l.email.Reset()
	l.password.Reset()
	return l.setFocus(loginEmail)
}

func (l *loginScreen) setFocus(i int) tea.Cmd {
	l.focus = i
	l.email.Blur()
	l.password.Blur()
	switch i {
	case loginEmail:
		return l.email.Focus()
	case loginPassword:
		return l.password.Focus()
	}
	return nil
}

func (l *loginScreen) typing() bool {
	return l.focus == loginEmail || l.focus == loginPassword
}

func (l *loginScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch l.focus {
	case loginEmail:
		l.email, cmd = l.email.Update(msg)
	case loginPassword:
		l.password, cmd = l.password.Update(msg)
	}
	return cmd
}

func (l *loginScreen) View(width int) string {
	inputWidth := width - 8
	if inputWidth > 40 {
		inputWidth = 40
	}
	l.email.Width = inputWidth
	l.password.Width = inputWidth

	var b strings.Builder
	b.WriteString(ui.Brand() + "\n\n")
	b.WriteString(ui.TitleStyle.Render("Welcome Back") + "\n")
	b.WriteString(ui.SubtitleStyle.Render("Sign in to continue") + "\n\n")

	b.WriteString(ui.LabelStyle.Render("Email") + "\n")
	b.WriteString(ui.Card(l.email.View(), inputWidth+6, l.focus == loginEmail, l.focus == loginEmail) + "\n")
	b.WriteString(ui.LabelStyle.Render("Password") + "\n")
	b.WriteString(ui.Card(l.password.View(), inputWidth+6, l.focus == loginPassword, l.focus == loginPassword) + "\n\n")

	b.WriteString(ui.Button("Log In", l.focus == loginSubmit, false) + "\n\n")
	b.WriteString(ui.Button("Continue as Guest", l.focus == loginGuest, false) + "\n\n")
	b.WriteString(ui.SubtitleStyle.Render("Don't have an account?") + "\n")
	b.WriteString(ui.Button("Sign Up", l.focus == loginSignup, false))
	return b.String()
}

func (m *root) handleLoginKey(name keys.KeyName) tea.Cmd {
	l := m.login
	switch name {
	case keys.KeyUp:
		return l.setFocus((l.focus - 1 + loginItems) % loginItems)
	case keys.KeyDown:
		return l.setFocus((l.focus + 1) % loginItems)
	case keys.KeyBack:
		return m.navigate(routeWelcome)
	case keys.KeyEnter:
		switch l.focus {
		case loginEmail, loginPassword:
			return l.setFocus(l.focus + 1)
		case loginSubmit, loginGuest:
			return m.navigate(routeHome)
		case loginSignup:
			return m.navigate(routeSignup)
		}
	}
	return nil
}

func (m *root) welcomeView() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		ui.Banner(),
		"",
		ui.TitleStyle.Render("Transform your space into a thriving garden"),
		ui.SubtitleStyle.Render("Get personalized recommendations for your growing space"),
		"",
		ui.Button("Get Started", true, false),
	)
}

func (m *root) signupView() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		ui.Brand(),
		"",
		ui.TitleStyle.Render("Create Account"),
		ui.SubtitleStyle.Render("Sign up is not available yet."),
		"",
		ui.Button("Back to Login", true, false),
	)
}
