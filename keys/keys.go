package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyBack
	KeyNextTab
	KeyPrevTab

	// Direct tab jumps.
	KeyHomeTab
	KeyAssessmentTab
	KeyLocationTab
	KeySettingsTab

	KeyCopy // Copy the rendered image URL.
	KeyHelp
	KeyQuit
	KeyForceQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"enter":     KeyEnter,
	" ":         KeyEnter,
	"esc":       KeyBack,
	"tab":       KeyNextTab,
	"shift+tab": KeyPrevTab,
	"alt+1":     KeyHomeTab,
	"alt+2":     KeyAssessmentTab,
	"alt+3":     KeyLocationTab,
	"alt+4":     KeySettingsTab,
	"c":         KeyCopy,
	"?":         KeyHelp,
	"q":         KeyQuit,
	"ctrl+c":    KeyForceQuit,
}

// typingKeys are the bindings that stay live while a text field has focus.
// Everything else is delivered to the field as text.
var typingKeys = map[string]bool{
	"up":        true,
	"down":      true,
	"enter":     true,
	"esc":       true,
	"tab":       true,
	"shift+tab": true,
	"alt+1":     true,
	"alt+2":     true,
	"alt+3":     true,
	"alt+4":     true,
	"ctrl+c":    true,
}

// Lookup resolves a key string. When typing is true only navigation keys
// resolve, so letters like q and j reach the focused input.
func Lookup(s string, typing bool) (KeyName, bool) {
	if typing && !typingKeys[s] {
		return 0, false
	}
	name, ok := GlobalKeyStringsMap[s]
	return name, ok
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("↵", "select"),
	),
	KeyBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	KeyNextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	KeyPrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	KeyHomeTab: key.NewBinding(
		key.WithKeys("alt+1"),
		key.WithHelp("alt+1", "home"),
	),
	KeyAssessmentTab: key.NewBinding(
		key.WithKeys("alt+2"),
		key.WithHelp("alt+2", "assessment"),
	),
	KeyLocationTab: key.NewBinding(
		key.WithKeys("alt+3"),
		key.WithHelp("alt+3", "location"),
	),
	KeySettingsTab: key.NewBinding(
		key.WithKeys("alt+4"),
		key.WithHelp("alt+4", "settings"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy url"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
