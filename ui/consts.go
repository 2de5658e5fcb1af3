package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "GrowLens"

var leafRaw = `     ▄▄████▄
   ▄████████▌
  ████████▀ ▌
 ▐██████▀  ▐
 ▐████▀   ▄▘
  ▀██▀ ▄▄▀
   ▄▀▀▀
  ▀`

var wordmarkRaw = `╔═╗┬─┐┌─┐┬ ┬╦  ┌─┐┌┐┌┌─┐
║ ╦├┬┘│ ││││║  ├┤ │││└─┐
╚═╝┴└─└─┘└┴┘╩═╝└─┘┘└┘└─┘`

// padLines pads all lines to the widest line's width so lipgloss
// center-alignment shifts every line by the same amount.
func padLines(s string) string {
	lines := strings.Split(s, "\n")
	maxW := 0
	for _, l := range lines {
		if w := len([]rune(l)); w > maxW {
			maxW = w
		}
	}
	for i, l := range lines {
		if w := len([]rune(l)); w < maxW {
			lines[i] = l + strings.Repeat(" ", maxW-w)
		}
	}
	return strings.Join(lines, "\n")
}

// Banner is the leaf logo over the wordmark, shown on the welcome screen.
func Banner() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		GradientText(padLines(leafRaw), ColorGreen, ColorDarkGreen),
		"",
		GradientText(wordmarkRaw, ColorGreen, "#7EC8D8"))
}

// Brand is the one-line logo used in screen headers.
func Brand() string {
	return lipgloss.NewStyle().Bold(true).Render(GradientText("❦ "+AppName, ColorGreen, ColorDarkGreen))
}
