package assessment

import (
	"fmt"
	"slices"
)

// ContextTag distinguishes the two supported growing spaces.
type ContextTag string

const (
	ContextField ContextTag = "field"
	ContextUrban ContextTag = "urban"
)

// ParseContextTag accepts "field" or "urban".
func ParseContextTag(s string) (ContextTag, error) {
	switch ContextTag(s) {
	case ContextField, ContextUrban:
		return ContextTag(s), nil
	default:
		return "", fmt.Errorf("unknown context %q: want %q or %q", s, ContextField, ContextUrban)
	}
}

// Preferences are the growing preferences offered for urban spaces, in display order.
var Preferences = []string{
	"Edible plants",
	"Decorative only",
	"Low maintenance",
	"Organic",
}

// IsPreference reports whether label is one of Preferences.
func IsPreference(label string) bool {
	return slices.Contains(Preferences, label)
}

// Dimension names one of the three size inputs.
type Dimension int

const (
	Width Dimension = iota
	Height
	Depth
)

func (d Dimension) String() string {
	switch d {
	case Width:
		return "Width (cm)"
	case Height:
		return "Height (cm)"
	case Depth:
		return "Depth (cm)"
	default:
		return "?"
	}
}

// Dimensions are kept as typed text. They are shown back to the user and are
// not sent anywhere.
type Dimensions struct {
	Width  string
	Height string
	Depth  string
}

// Form is the state of one assessment screen visit. It is a value: every
// With*/Toggle* method returns an updated copy and leaves the receiver alone.
type Form struct {
	Context     ContextTag
	ImagePath   string
	Dimensions  Dimensions
	preferences []string
	Prompt      string
}

// NewForm starts a form for ctx. An empty prompt falls back to DefaultPrompt.
func NewForm(ctx ContextTag, prompt string) Form {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return Form{Context: ctx, Prompt: prompt}
}

// HasImage reports whether a photo has been picked.
func (f Form) HasImage() bool {
	return f.ImagePath != ""
}

// WithImage returns f with the photo replaced.
func (f Form) WithImage(path string) Form {
	f.ImagePath = path
	return f
}

// WithPrompt returns f with the prompt replaced.
func (f Form) WithPrompt(prompt string) Form {
	f.Prompt = prompt
	return f
}

// WithDimension returns f with one dimension replaced.
func (f Form) WithDimension(d Dimension, value string) Form {
	switch d {
	case Width:
		f.Dimensions.Width = value
	case Height:
		f.Dimensions.Height = value
	case Depth:
		f.Dimensions.Depth = value
	}
	return f
}

// Dimension returns the text of one dimension.
func (f Form) Dimension(d Dimension) string {
	switch d {
	case Width:
		return f.Dimensions.Width
	case Height:
		return f.Dimensions.Height
	case Depth:
		return f.Dimensions.Depth
	default:
		return ""
	}
}

// TogglePreference returns f with label added (appended, keeping selection
// order) or removed if it was already selected.
func (f Form) TogglePreference(label string) Form {
	next := make([]string, 0, len(f.preferences)+1)
	found := false
	for _, p := range f.preferences {
		if p == label {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		next = append(next, label)
	}
	f.preferences = next
	return f
}

// Selected reports whether label is currently selected.
func (f Form) Selected(label string) bool {
	return slices.Contains(f.preferences, label)
}

// SelectedPreferences returns the selected labels in the order they were picked.
func (f Form) SelectedPreferences() []string {
	return slices.Clone(f.preferences)
}
