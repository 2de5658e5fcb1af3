package overlay

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastLoading
)

const (
	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second
	ErrorDismissAfter   = 5 * time.Second

	ToastWidth = 42
	MaxToasts  = 3
)

var idCounter atomic.Uint64

type toast struct {
	ID       string
	Type     ToastType
	Message  string
	ShownAt  time.Time
	Duration time.Duration // 0 means it stays until resolved
}

func (t *toast) expired(now time.Time) bool {
	return t.Duration > 0 && now.Sub(t.ShownAt) >= t.Duration
}

// ToastManager keeps the short notifications stacked in the top-right corner.
type ToastManager struct {
	toasts  []*toast
	spinner *spinner.Model
	now     func() time.Time
}

// NewToastManager creates a new ToastManager with the given spinner model.
func NewToastManager(s *spinner.Model) *ToastManager {
	return &ToastManager{spinner: s, now: time.Now}
}

func (tm *ToastManager) Info(msg string) string {
	return tm.add(ToastInfo, msg, InfoDismissAfter)
}

func (tm *ToastManager) Success(msg string) string {
	return tm.add(ToastSuccess, msg, SuccessDismissAfter)
}

func (tm *ToastManager) Error(msg string) string {
	return tm.add(ToastError, msg, ErrorDismissAfter)
}

// Loading creates a toast that stays until Resolve is called with its ID.
func (tm *ToastManager) Loading(msg string) string {
	return tm.add(ToastLoading, msg, 0)
}

// Resolve turns a loading toast into a regular one. Unknown IDs are ignored.
func (tm *ToastManager) Resolve(id string, typ ToastType, msg string) {
	for _, t := range tm.toasts {
		if t.ID != id {
			continue
		}
		t.Type = typ
		t.Message = msg
		t.ShownAt = tm.now()
		switch typ {
		case ToastError:
			t.Duration = ErrorDismissAfter
		case ToastInfo:
			t.Duration = InfoDismissAfter
		default:
			t.Duration = SuccessDismissAfter
		}
		return
	}
}

// HasActiveToasts reports whether anything is still on screen.
func (tm *ToastManager) HasActiveToasts() bool {
	return len(tm.toasts) > 0
}

func (tm *ToastManager) add(typ ToastType, msg string, d time.Duration) string {
	t := &toast{
		ID:       fmt.Sprintf("toast-%d", idCounter.Add(1)),
		Type:     typ,
		Message:  msg,
		ShownAt:  tm.now(),
		Duration: d,
	}
	if len(tm.toasts) >= MaxToasts {
		tm.toasts = tm.toasts[len(tm.toasts)-MaxToasts+1:]
	}
	tm.toasts = append(tm.toasts, t)
	return t.ID
}

// ToastTickMsg is sent by the app about once a second while toasts are shown.
type ToastTickMsg struct{}

// Tick drops expired toasts.
func (tm *ToastManager) Tick() {
	now := tm.now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		if !t.expired(now) {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

func toastColor(typ ToastType) string {
	switch typ {
	case ToastSuccess:
		return "#34D399"
	case ToastError:
		return "#FCA5A5"
	case ToastLoading:
		return "#F0A868"
	default:
		return "#7EC8D8"
	}
}

func (tm *ToastManager) icon(typ ToastType) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(toastColor(typ)))
	switch typ {
	case ToastSuccess:
		return style.Render("✓")
	case ToastError:
		return style.Render("✗")
	case ToastLoading:
		if tm.spinner != nil {
			return style.Render(tm.spinner.View())
		}
		return style.Render("…")
	default:
		return style.Render("▸")
	}
}

func (tm *ToastManager) render(t *toast) string {
	icon := tm.icon(t.Type)
	msgWidth := ToastWidth - 4 - lipgloss.Width(icon) - 1
	lines := strings.Split(wordwrap.String(t.Message, msgWidth), "\n")
	indent := strings.Repeat(" ", lipgloss.Width(icon)+1)
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(toastColor(t.Type))).
		Padding(0, 1).
		Width(ToastWidth - 2).
		Render(icon + " " + strings.Join(lines, "\n"))
}

// View renders all toasts stacked vertically, newest last.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tm.toasts))
	for _, t := range tm.toasts {
		rendered = append(rendered, tm.render(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
