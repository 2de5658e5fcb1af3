package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay is a read-only modal, used for the help screen. Any key closes it.
type TextOverlay struct {
	// Whether the overlay has been dismissed
	Dismissed bool
	// Callback function to be called when the overlay is dismissed
	OnDismiss func()

	content string
	width   int
}

// NewTextOverlay creates a new text screen overlay with the given content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content}
}

// HandleKeyPress dismisses the overlay. It always returns true.
func (t *TextOverlay) HandleKeyPress(tea.KeyMsg) bool {
	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

func (t *TextOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#34D399")).
		Padding(1, 2)
	if t.width > 0 {
		style = style.Width(t.width)
	}
	return style.Render(t.content)
}

func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}
