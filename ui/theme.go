package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorGreen     = "#34D399"
	ColorDarkGreen = "#047857"
	ColorMint      = "#ECFDF5"
	ColorInk       = "#111827"
	ColorGray      = "#6B7280"
	ColorBorder    = "#E5E7EB"
	ColorErrorText = "#B91C1C"
	ColorErrorEdge = "#FCA5A5"
	ColorDisabled  = "#9CA3AF"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: ColorInk, Dark: ColorMint})

	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray))

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			Foreground(lipgloss.AdaptiveColor{Light: ColorInk, Dark: ColorMint})

	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color(ColorGreen)).
				Foreground(lipgloss.AdaptiveColor{Light: ColorDarkGreen, Dark: ColorGreen})

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 3).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(ColorGreen))

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color(ColorDarkGreen)).
				Underline(true)

	disabledButtonStyle = buttonStyle.Background(lipgloss.Color(ColorDisabled))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Bold(true)
)

// Card renders a bordered block. Selected cards get the accent border; the
// focused one gets a cursor in front of it.
func Card(content string, width int, selected, focused bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 4 {
		style = style.Width(width - 4)
	}
	return withCursor(style.Render(content), focused)
}

// Button renders a call-to-action.
func Button(label string, focused, disabled bool) string {
	var b string
	switch {
	case disabled:
		b = disabledButtonStyle.Render(label)
	case focused:
		b = focusedButtonStyle.Render(label)
	default:
		b = buttonStyle.Render(label)
	}
	return withCursor(b, focused)
}

// Row renders a single line item, e.g. a settings entry.
func Row(label, trailing string, width int, focused bool) string {
	gap := width - 4 - lipgloss.Width(label) - lipgloss.Width(trailing)
	if gap < 1 {
		gap = 1
	}
	line := label + lipgloss.NewStyle().Width(gap).Render("") + LabelStyle.Render(trailing)
	if focused {
		line = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Render(line)
	}
	return withCursor(line, focused)
}

// Checkbox renders a toggleable option.
func Checkbox(label string, checked, focused bool) string {
	box := "[ ]"
	style := lipgloss.NewStyle()
	if checked {
		box = "[x]"
		style = style.Foreground(lipgloss.AdaptiveColor{Light: ColorDarkGreen, Dark: ColorGreen}).Bold(true)
	}
	return withCursor(style.Render(box+" "+label), focused)
}

func withCursor(s string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = cursorStyle.Render("▸ ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, prefix, s)
}
