package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var errBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(ColorErrorEdge)).
	Foreground(lipgloss.AdaptiveColor{Light: ColorErrorText, Dark: ColorErrorEdge}).
	Padding(0, 1)

// ErrBox is the inline error banner.
type ErrBox struct {
	width int
	msg   string
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	if err == nil {
		e.msg = ""
		return
	}
	e.msg = err.Error()
}

// SetMessage sets the banner text directly.
func (e *ErrBox) SetMessage(msg string) {
	e.msg = msg
}

func (e *ErrBox) Clear() {
	e.msg = ""
}

// Message returns the text currently shown, "" when hidden.
func (e *ErrBox) Message() string {
	return e.msg
}

func (e *ErrBox) SetSize(width int) {
	e.width = width
}

// String renders the banner, or nothing when there is no error.
func (e *ErrBox) String() string {
	if e.msg == "" {
		return ""
	}
	w := e.width - errBoxStyle.GetHorizontalFrameSize()
	if w < 20 {
		w = 20
	}
	msg := strings.TrimSpace(wordwrap.String(e.msg, w))
	return errBoxStyle.Width(w + errBoxStyle.GetHorizontalPadding()).Render(msg)
}
