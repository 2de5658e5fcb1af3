package assessment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContextTag(t *testing.T) {
	tag, err := ParseContextTag("urban")
	require.NoError(t, err)
	assert.Equal(t, ContextUrban, tag)

	tag, err = ParseContextTag("field")
	require.NoError(t, err)
	assert.Equal(t, ContextField, tag)

	_, err = ParseContextTag("orbit")
	assert.Error(t, err)
}

func TestNewFormDefaultsPrompt(t *testing.T) {
	assert.Equal(t, DefaultPrompt, NewForm(ContextUrban, "").Prompt)
	assert.Equal(t, "custom", NewForm(ContextUrban, "custom").Prompt)
}

func TestFormIsReplacedOnChange(t *testing.T) {
	f := NewForm(ContextUrban, "p")

	g := f.WithImage("/a.png").
		WithDimension(Width, "120").
		WithDimension(Height, "200").
		WithDimension(Depth, "40").
		WithPrompt("q").
		TogglePreference("Organic")

	assert.False(t, f.HasImage(), "original form is untouched")
	assert.Equal(t, "p", f.Prompt)
	assert.Empty(t, f.SelectedPreferences())

	assert.True(t, g.HasImage())
	assert.Equal(t, Dimensions{Width: "120", Height: "200", Depth: "40"}, g.Dimensions)
	assert.Equal(t, "40", g.Dimension(Depth))
	assert.Equal(t, "q", g.Prompt)
	assert.True(t, g.Selected("Organic"))
}

func TestTogglePreference(t *testing.T) {
	f := NewForm(ContextUrban, "p").
		TogglePreference("Organic").
		TogglePreference("Edible plants")
	assert.Equal(t, []string{"Organic", "Edible plants"}, f.SelectedPreferences(), "selection order is kept")

	f = f.TogglePreference("Organic")
	assert.Equal(t, []string{"Edible plants"}, f.SelectedPreferences())
	assert.False(t, f.Selected("Organic"))

	// Toggling on a copy must not leak into the other copy's backing array.
	a := f.TogglePreference("Low maintenance")
	b := f.TogglePreference("Decorative only")
	assert.Equal(t, []string{"Edible plants", "Low maintenance"}, a.SelectedPreferences())
	assert.Equal(t, []string{"Edible plants", "Decorative only"}, b.SelectedPreferences())
}

func TestFinalPrompt(t *testing.T) {
	t.Run("urban appends lowercased preferences", func(t *testing.T) {
		f := NewForm(ContextUrban, "Make a garden").
			TogglePreference("Edible plants").
			TogglePreference("Organic")

		got := FinalPrompt(f)

		assert.Equal(t, "Make a garden with edible plants, organic", got)
		assert.True(t, strings.HasSuffix(got, "with edible plants, organic"))
	})

	t.Run("urban without preferences keeps the separator", func(t *testing.T) {
		assert.Equal(t, "Make a garden ", FinalPrompt(NewForm(ContextUrban, "Make a garden")))
	})

	t.Run("field ignores preferences", func(t *testing.T) {
		f := NewForm(ContextField, "Plough it")
		for _, p := range Preferences {
			f = f.TogglePreference(p)
			assert.Equal(t, "Plough it", FinalPrompt(f))
		}
	})
}

func TestIsPreference(t *testing.T) {
	assert.True(t, IsPreference("Low maintenance"))
	assert.False(t, IsPreference("low maintenance"))
}

func TestRecommendationsAreStatic(t *testing.T) {
	assert.Equal(t, Recommendations(), Recommendations())
	assert.Len(t, Recommendations(), 4)
	assert.Contains(t, RecommendationsMarkdown(), "- Use LED grow lights")
}
