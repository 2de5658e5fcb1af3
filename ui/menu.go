package ui

import (
	"strings"

	"github.com/ByteMirror/growlens/keys"
	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var separator = " • "

// Menu is the key-hint footer. Which hints show depends on the screen.
type Menu struct {
	options []keys.KeyName
	width   int
}

func NewMenu() *Menu {
	return &Menu{}
}

func (m *Menu) SetOptions(options ...keys.KeyName) {
	m.options = options
}

func (m *Menu) SetSize(width int) {
	m.width = width
}

func (m *Menu) String() string {
	parts := make([]string, 0, len(m.options))
	for _, k := range m.options {
		binding, ok := keys.GlobalkeyBindings[k]
		if !ok {
			continue
		}
		help := binding.Help()
		parts = append(parts, keyStyle.Render(help.Key)+" "+descStyle.Render(help.Desc))
	}
	line := strings.Join(parts, sepStyle.Render(separator))
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(line)
}
