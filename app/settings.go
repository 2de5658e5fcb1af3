package app

import (
	"strings"

	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/ui"
	"github.com/ByteMirror/growlens/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsItem int

const (
	settingEditProfile settingsItem = iota
	settingChangeLocation
	settingDarkMode
	settingAPIToken
	settingHelp
	settingPrivacy
	settingTerms
	settingLogout
	settingCount
)

func (s settingsItem) String() string {
	switch s {
	case settingEditProfile:
		return "Edit Profile"
	case settingChangeLocation:
		return "Change Location"
	case settingDarkMode:
		return "Dark Mode"
	case settingAPIToken:
		return "API Token"
	case settingHelp:
		return "Help & Support"
	case settingPrivacy:
		return "Privacy Policy"
	case settingTerms:
		return "Terms of Service"
	case settingLogout:
		return "Log Out"
	}
	return ""
}

// settingsScreen is mostly static. Only the API token and Log Out do something.
type settingsScreen struct {
	focus    settingsItem
	darkMode bool
	tokenSet bool
}

func newSettingsScreen(tokenSet bool) *settingsScreen {
	return &settingsScreen{tokenSet: tokenSet}
}

func (s *settingsScreen) trailing(item settingsItem) string {
	switch item {
	case settingDarkMode:
		if s.darkMode {
			return "[on]"
		}
		return "[off]"
	case settingAPIToken:
		if s.tokenSet {
			return "set ›"
		}
		return "not set ›"
	case settingLogout:
		return ""
	}
	return "›"
}

var logoutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorErrorText)).Bold(true)

func (s *settingsScreen) View(width int) string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Settings") + "\n")
	for item := settingEditProfile; item < settingCount; item++ {
		// Sections: profile, app, legal.
		switch item {
		case settingEditProfile, settingHelp, settingLogout:
			b.WriteString("\n")
		}
		label := item.String()
		if item == settingLogout {
			label = logoutStyle.Render(label)
		}
		b.WriteString(ui.Row(label, s.trailing(item), width, item == s.focus) + "\n")
	}
	return b.String()
}

func (m *root) handleSettingsKey(name keys.KeyName) tea.Cmd {
	s := m.settings
	switch name {
	case keys.KeyUp:
		s.focus = (s.focus - 1 + settingCount) % settingCount
	case keys.KeyDown:
		s.focus = (s.focus + 1) % settingCount
	case keys.KeyEnter:
		switch s.focus {
		case settingDarkMode:
			s.darkMode = !s.darkMode
		case settingAPIToken:
			m.textInputOverlay = overlay.NewTextInputOverlay("Recraft API token", "")
			m.textInputOverlay.Hint = "enter to save • leave empty to remove • esc to cancel"
			m.textInputOverlay.SetSingleLine()
			m.textInputOverlay.SetWidth(m.overlayWidth())
			m.state = stateToken
		case settingHelp:
			m.showHelp()
		case settingLogout:
			return m.navigate(routeWelcome)
		}
	}
	return nil
}

func (m *root) locationView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render("Location"),
		ui.SubtitleStyle.Render("Location-based recommendations are coming soon."),
	)
}
