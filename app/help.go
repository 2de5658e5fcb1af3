package app

import (
	"github.com/ByteMirror/growlens/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(ui.ColorDarkGreen))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ui.ColorGreen))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: ui.ColorInk, Dark: "#FFFFFF"})
)

func helpContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(ui.AppName),
		"",
		"Photograph your growing space and get a rendering plus recommendations.",
		"",
		headerStyle.Render("Navigation:"),
		keyStyle.Render("tab/shift-tab")+descStyle.Render("  - Next / previous tab"),
		keyStyle.Render("alt-1..4")+descStyle.Render("       - Jump to Home, Assessment, Location, Settings"),
		keyStyle.Render("↑/k, ↓/j")+descStyle.Render("       - Move between items"),
		keyStyle.Render("↵/space")+descStyle.Render("        - Select"),
		keyStyle.Render("esc")+descStyle.Render("            - Back"),
		"",
		headerStyle.Render("Assessment:"),
		keyStyle.Render("↵")+descStyle.Render(" on the photo  - Choose a photo from disk"),
		keyStyle.Render("↵")+descStyle.Render(" on the prompt - Edit the prompt"),
		keyStyle.Render("c")+descStyle.Render("              - Copy the rendered image link"),
		"",
		headerStyle.Render("Other:"),
		keyStyle.Render("?")+descStyle.Render("              - Show this help"),
		keyStyle.Render("q")+descStyle.Render("              - Quit"),
		"",
		descStyle.Render("Press any key to close."),
	)
}
