package app

import (
	"strings"

	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// homeScreen lets the user pick a growing context. The cursor walks over the
// context cards and, once a card is chosen, the start button.
type homeScreen struct {
	options  []assessment.Option
	selected int // -1 until a card is chosen
	focus    int
}

func newHomeScreen() *homeScreen {
	return &homeScreen{options: assessment.Options(), selected: -1}
}

func (h *homeScreen) hasSelection() bool {
	return h.selected >= 0
}

func (h *homeScreen) items() int {
	if !h.hasSelection() {
		return len(h.options)
	}
	return len(h.options) + 1
}

func (h *homeScreen) onStart() bool {
	return h.hasSelection() && h.focus == len(h.options)
}

func (h *homeScreen) option() assessment.Option {
	return h.options[h.selected]
}

func (h *homeScreen) View(width int) string {
	var b strings.Builder
	b.WriteString(ui.Brand() + "\n\n")
	b.WriteString(ui.TitleStyle.Render("Choose your growing space") + "\n")
	b.WriteString(ui.SubtitleStyle.Render("Select the type of space you want to assess") + "\n\n")

	for i, opt := range h.options {
		card := ui.TitleStyle.Render(opt.Title) + "\n" + ui.SubtitleStyle.Render(opt.Description)
		b.WriteString(ui.Card(card, width, i == h.selected, i == h.focus) + "\n")
	}

	if !h.hasSelection() {
		return strings.TrimRight(b.String(), "\n")
	}
	opt := h.option()
	b.WriteString(ui.SectionStyle.Render(opt.SectionTitle) + "\n")
	b.WriteString(ui.SubtitleStyle.Render(opt.ActionDescription) + "\n\n")
	b.WriteString(ui.Button(opt.Action, h.onStart(), false))
	return b.String()
}

func (m *root) handleHomeKey(name keys.KeyName) tea.Cmd {
	h := m.home
	switch name {
	case keys.KeyUp:
		h.focus = (h.focus - 1 + h.items()) % h.items()
	case keys.KeyDown:
		h.focus = (h.focus + 1) % h.items()
	case keys.KeyEnter:
		if !h.onStart() {
			h.selected = h.focus
			return nil
		}
		m.openAssessment(h.option().Tag, m.promptOverride)
	}
	return nil
}
