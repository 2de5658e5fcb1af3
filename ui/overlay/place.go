package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws fg in the middle of a width×height canvas, replacing the
// background. Modals use it so the screen underneath cannot take input.
func Center(fg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, fg)
}

// TopRight lays fg over the top-right corner of bg, line by line. bg lines that
// fg covers are truncated to make room.
func TopRight(fg, bg string, width int) string {
	if fg == "" {
		return bg
	}
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < len(fgLines) {
		bgLines = append(bgLines, "")
	}
	for i, line := range fgLines {
		room := width - lipgloss.Width(line)
		if room < 0 {
			room = 0
		}
		left := ansi.Truncate(bgLines[i], room, "")
		if pad := room - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		bgLines[i] = left + line
	}
	return strings.Join(bgLines, "\n")
}
