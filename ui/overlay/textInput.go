package overlay

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInputOverlay is a modal multi-line editor with a title and an Enter
// button. It is used for the assessment prompt and the API token.
type TextInputOverlay struct {
	textarea      textarea.Model
	Title         string
	Hint          string
	FocusIndex    int // 0 for text input, 1 for enter button
	Submitted     bool
	Canceled      bool
	width, height int
}

// NewTextInputOverlay creates a new text input overlay with the given title and initial value.
func NewTextInputOverlay(title string, initialValue string) *TextInputOverlay {
	ti := textarea.New()
	ti.SetValue(initialValue)
	ti.Focus()
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.CharLimit = 0
	ti.MaxHeight = 0

	return &TextInputOverlay{
		textarea: ti,
		Title:    title,
		width:    60,
		height:   6,
	}
}

// SetSingleLine shrinks the editor to one row, for short values like tokens.
func (t *TextInputOverlay) SetSingleLine() {
	t.textarea.SetHeight(1)
	t.height = 1
}

func (t *TextInputOverlay) SetSize(width, height int) {
	t.textarea.SetHeight(height)
	t.width = width
	t.height = height
}

// SetWidth resizes the overlay horizontally and keeps its height.
func (t *TextInputOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed. Enter submits; alt+enter
// inserts a newline.
func (t *TextInputOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		t.FocusIndex = (t.FocusIndex + 1) % 2
		if t.FocusIndex == 0 {
			t.textarea.Focus()
		} else {
			t.textarea.Blur()
		}
		return false
	case tea.KeyEsc:
		t.Canceled = true
		return true
	case tea.KeyEnter:
		if msg.Alt && t.FocusIndex == 0 {
			t.textarea.InsertString("\n")
			return false
		}
		t.Submitted = true
		return true
	default:
		if t.FocusIndex == 0 {
			t.textarea, _ = t.textarea.Update(msg)
		}
		return false
	}
}

// GetValue returns the current value of the text input.
func (t *TextInputOverlay) GetValue() string {
	return t.textarea.Value()
}

// IsSubmitted returns whether the form was submitted.
func (t *TextInputOverlay) IsSubmitted() bool {
	return t.Submitted
}

// Render renders the text input overlay.
func (t *TextInputOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#34D399")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#047857")).
		Bold(true).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("#34D399")).
		Foreground(lipgloss.Color("0"))

	w := t.width
	if w < 40 {
		w = 40
	}
	t.textarea.SetWidth(w - 6)

	content := titleStyle.Render(t.Title) + "\n"
	content += t.textarea.View() + "\n\n"
	if t.Hint != "" {
		content += hintStyle.Render(t.Hint) + "\n"
	}

	enterButton := " Enter "
	if t.FocusIndex == 1 {
		enterButton = focusedButtonStyle.Render(enterButton)
	} else {
		enterButton = buttonStyle.Render(enterButton)
	}
	content += enterButton

	return style.Render(content)
}
