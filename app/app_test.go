package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/config"
	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/log"
	"github.com/ByteMirror/growlens/recraft"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests to set up the test environment
func TestMain(m *testing.M) {
	log.Initialize(false)
	defer log.Close()

	exitCode := m.Run()
	os.Exit(exitCode)
}

type memTokens struct {
	token string
}

func (s *memTokens) GetToken() (string, error) { return s.token, nil }
func (s *memTokens) SetToken(t string) error  { s.token = t; return nil }

type fakeTransformer struct {
	token  string
	calls  int
	prompt string
	image  string
	url    string
	err    error
}

func (f *fakeTransformer) Transform(_ context.Context, img recraft.Image, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	f.image = img.Name
	return f.url, f.err
}

type harness struct {
	root        *root
	tokens      *memTokens
	transformer *fakeTransformer
}

func newHarness(t *testing.T, token string, opts Options) *harness {
	t.Helper()
	h := &harness{
		tokens:      &memTokens{token: token},
		transformer: &fakeTransformer{url: "https://x/y.png"},
	}
	opts.Config = config.DefaultConfig()
	opts.Tokens = h.tokens
	opts.NewTransformer = func(token string) assessment.Transformer {
		h.transformer.token = token
		return h.transformer
	}
	h.root = newRoot(context.Background(), opts, nil)
	return h
}

func (h *harness) key(t *testing.T, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := h.root.Update(msg)
	return cmd
}

func (h *harness) focusSubmit() {
	h.root.assess.setFocus(len(h.root.assess.items) - 1)
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "space.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0644))
	return path
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t, "", Options{})
	m := h.root
	require.Equal(t, routeWelcome, m.route)

	h.key(t, enter)
	assert.Equal(t, routeLogin, m.route)

	// Letters reach the email field instead of the key map.
	h.key(t, runes("q"))
	assert.Equal(t, "q", m.login.email.Value())
	assert.Equal(t, routeLogin, m.route)

	t.Run("sign up and back", func(t *testing.T) {
		m.login.setFocus(loginSignup)
		h.key(t, enter)
		assert.Equal(t, routeSignup, m.route)
		h.key(t, esc)
		assert.Equal(t, routeLogin, m.route)
	})

	t.Run("guest goes home without validation", func(t *testing.T) {
		for i := 0; i < loginGuest; i++ {
			h.key(t, down)
		}
		require.Equal(t, loginGuest, m.login.focus)
		h.key(t, enter)
		assert.Equal(t, routeHome, m.route)
	})
}

func TestTabNavigation(t *testing.T) {
	h := newHarness(t, "abc", Options{SkipAuth: true})
	m := h.root
	require.Equal(t, routeHome, m.route)

	h.key(t, tab)
	assert.Equal(t, routeAssessment, m.route)
	require.NotNil(t, m.assess)
	assert.Equal(t, 1, m.tabBar.Active())

	h.key(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, routeHome, m.route)
	assert.Nil(t, m.assess, "leaving the assessment discards it")

	h.key(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4"), Alt: true})
	assert.Equal(t, routeSettings, m.route)

	h.key(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	assert.Equal(t, routeLocation, m.route)
	assert.Contains(t, m.View(), "Location")
}

func TestHomeStartsAssessmentWithContext(t *testing.T) {
	h := newHarness(t, "abc", Options{SkipAuth: true, Prompt: "my prompt"})
	m := h.root

	h.key(t, down)
	h.key(t, enter) // select urban
	h.key(t, down)
	h.key(t, enter) // start

	require.Equal(t, routeAssessment, m.route)
	require.NotNil(t, m.assess)
	assert.Equal(t, assessment.ContextUrban, m.assess.form.Context)
	assert.Equal(t, "my prompt", m.assess.form.Prompt)
}

func TestSubmitWithoutImage(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	h.focusSubmit()

	cmd := h.root.handleAssessmentKey(keys.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Please upload an image first", h.root.assess.errBox.Message())
	assert.False(t, h.root.assess.analyzing)
	assert.Zero(t, h.transformer.calls)
}

func TestSubmitWithoutToken(t *testing.T) {
	prev := recraft.DefaultToken
	recraft.DefaultToken = ""
	defer func() { recraft.DefaultToken = prev }()

	h := newHarness(t, "", Options{Context: assessment.ContextField})
	h.root.assess.setImage(writeImage(t))

	cmd := h.root.assess.startSubmit(context.Background())

	assert.Nil(t, cmd)
	assert.Equal(t, "API token not available", h.root.assess.errBox.Message())
	assert.Zero(t, h.transformer.calls)
}

func TestTokenResolution(t *testing.T) {
	prev := recraft.DefaultToken
	recraft.DefaultToken = "built-in"
	defer func() { recraft.DefaultToken = prev }()

	t.Run("stored token wins", func(t *testing.T) {
		h := newHarness(t, "abc", Options{Context: assessment.ContextField})
		assert.Equal(t, "abc", h.transformer.token)
		assert.True(t, h.root.assess.hasToken)
	})

	t.Run("falls back to the built-in token", func(t *testing.T) {
		h := newHarness(t, "", Options{Context: assessment.ContextField})
		assert.Equal(t, "built-in", h.transformer.token)
		assert.True(t, h.root.assess.hasToken)
	})
}

func TestSubmitSuccess(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	a := h.root.assess
	a.setImage(writeImage(t))
	a.errBox.SetMessage("old error")

	cmd := a.startSubmit(context.Background())
	require.NotNil(t, cmd)
	assert.True(t, a.analyzing)
	assert.Empty(t, a.errBox.Message())

	t.Run("pending submit is a no-op", func(t *testing.T) {
		assert.Nil(t, a.startSubmit(context.Background()))
		h.focusSubmit()
		assert.Nil(t, h.root.handleAssessmentKey(keys.KeyEnter))
	})

	h.root.Update(cmd())

	assert.Equal(t, 1, h.transformer.calls)
	assert.Equal(t, "space.jpg", h.transformer.image)
	assert.False(t, a.analyzing)
	assert.Equal(t, "https://x/y.png", a.resultURL)
	assert.Empty(t, a.errBox.Message())
	assert.True(t, h.root.toasts.HasActiveToasts())
	assert.Contains(t, h.root.View(), "https://x/y.png")
}

func TestSubmitFailureKeepsPreviousResult(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	a := h.root.assess
	a.setImage(writeImage(t))
	a.resultURL = "https://x/old.png"
	h.transformer.err = &recraft.APIError{StatusCode: 500, Message: "API request failed with status 500"}

	cmd := a.startSubmit(context.Background())
	require.NotNil(t, cmd)
	h.root.Update(cmd())

	assert.False(t, a.analyzing)
	assert.Equal(t, "API request failed with status 500", a.errBox.Message())
	assert.Equal(t, "https://x/old.png", a.resultURL)
}

func TestUrbanPreferencesReachPrompt(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextUrban, Prompt: "Make it green"})
	a := h.root.assess
	a.setImage(writeImage(t))

	toggle := func(label string) {
		for i, it := range a.items {
			if it.kind == itemPreference && it.pref == label {
				a.setFocus(i)
				h.root.handleAssessmentKey(keys.KeyEnter)
				return
			}
		}
		t.Fatalf("no preference item %q", label)
	}
	toggle("Edible plants")
	toggle("Organic")

	cmd := a.startSubmit(context.Background())
	require.NotNil(t, cmd)
	cmd()

	assert.True(t, strings.HasSuffix(h.transformer.prompt, "with edible plants, organic"), h.transformer.prompt)
}

func TestFieldHasNoPreferenceItems(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	for _, it := range h.root.assess.items {
		assert.NotEqual(t, itemPreference, it.kind)
	}
}

func TestLateResultForClosedVisitIsDropped(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	m := h.root
	m.assess.setImage(writeImage(t))
	cmd := m.assess.startSubmit(context.Background())
	require.NotNil(t, cmd)
	oldVisit := m.assess.visit

	m.navigate(routeHome)
	m.navigate(routeAssessment)
	require.NotNil(t, m.assess)
	require.NotEqual(t, oldVisit, m.assess.visit)

	m.Update(cmd())

	assert.Empty(t, m.assess.resultURL)
	assert.False(t, m.assess.analyzing)
}

func TestNewImageClearsResultAndError(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	a := h.root.assess
	a.resultURL = "https://x/y.png"
	a.errBox.SetError(errors.New("boom"))

	a.setImage("/tmp/other.png")

	assert.Empty(t, a.resultURL)
	assert.Empty(t, a.errBox.Message())
	assert.Equal(t, "/tmp/other.png", a.form.ImagePath)
}

func TestDimensionInputAcceptsNumbersOnly(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	a := h.root.assess
	for i, it := range a.items {
		if it.kind == itemDimension && it.dim == assessment.Width {
			a.setFocus(i)
		}
	}
	require.True(t, a.typing())

	for _, s := range []string{"1", "a", "2", ".", "5", "q"} {
		h.key(t, runes(s))
	}

	assert.Equal(t, "12.5", a.form.Dimension(assessment.Width))
	assert.Equal(t, routeAssessment, h.root.route, "q is typed, not quit")
}

func TestEditPrompt(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	m := h.root
	for i, it := range m.assess.items {
		if it.kind == itemPrompt {
			m.assess.setFocus(i)
		}
	}

	h.key(t, enter)
	require.Equal(t, statePrompt, m.state)
	require.NotNil(t, m.textInputOverlay)

	h.key(t, runes(" at dusk"))
	h.key(t, enter)

	assert.Equal(t, stateDefault, m.state)
	assert.Nil(t, m.textInputOverlay)
	assert.Equal(t, assessment.DefaultPrompt+" at dusk", m.assess.form.Prompt)
}

func TestSettingsTokenAndLogout(t *testing.T) {
	h := newHarness(t, "", Options{SkipAuth: true})
	m := h.root
	m.navigate(routeSettings)
	require.NotNil(t, m.settings)
	assert.False(t, m.settings.tokenSet)

	m.settings.focus = settingAPIToken
	h.key(t, enter)
	require.Equal(t, stateToken, m.state)

	h.key(t, runes("tok-123"))
	h.key(t, enter)

	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, "tok-123", h.tokens.token)
	assert.True(t, m.settings.tokenSet)

	t.Run("esc cancels without saving", func(t *testing.T) {
		h.key(t, enter)
		require.Equal(t, stateToken, m.state)
		h.key(t, runes("other"))
		h.key(t, esc)
		assert.Equal(t, stateDefault, m.state)
		assert.Equal(t, "tok-123", h.tokens.token)
	})

	m.settings.focus = settingLogout
	h.key(t, enter)
	assert.Equal(t, routeWelcome, m.route)
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, "", Options{SkipAuth: true})
	m := h.root

	h.key(t, runes("?"))
	require.Equal(t, stateHelp, m.state)
	assert.Contains(t, m.View(), "Show this help")

	h.key(t, runes("x"))
	assert.Equal(t, stateDefault, m.state)
	assert.Nil(t, m.textOverlay)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "", Options{SkipAuth: true})
	cmd := h.key(t, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSubmitShowsLoadingToastUntilDone(t *testing.T) {
	h := newHarness(t, "abc", Options{Context: assessment.ContextField})
	m := h.root
	m.assess.setImage(writeImage(t))

	require.NotNil(t, m.submit())
	require.Contains(t, m.pendingToasts, m.assess.visit)
	assert.Contains(t, m.toasts.View(), "Analyzing your space...")

	t.Run("success resolves the same toast", func(t *testing.T) {
		m.Update(submissionDoneMsg{visit: m.assess.visit, url: "https://x/y.png"})

		view := m.toasts.View()
		assert.Contains(t, view, "Your space has been rendered")
		assert.NotContains(t, view, "Analyzing your space...")
		assert.Empty(t, m.pendingToasts)
	})

	t.Run("failure resolves to an error", func(t *testing.T) {
		require.NotNil(t, m.submit())
		m.Update(submissionDoneMsg{visit: m.assess.visit, err: errors.New("boom")})

		view := m.toasts.View()
		assert.Contains(t, view, "Analysis failed")
		assert.NotContains(t, view, "Analyzing your space...")
		assert.Equal(t, "https://x/y.png", m.assess.resultURL)
	})

	t.Run("closed visit resolves instead of spinning forever", func(t *testing.T) {
		require.NotNil(t, m.submit())
		oldVisit := m.assess.visit
		m.navigate(routeHome)

		m.Update(submissionDoneMsg{visit: oldVisit, url: "https://x/late.png"})

		view := m.toasts.View()
		assert.Contains(t, view, "result discarded")
		assert.NotContains(t, view, "Analyzing your space...")
		assert.Empty(t, m.pendingToasts)
	})
}

func TestHomeStartsWithNothingSelected(t *testing.T) {
	h := newHarness(t, "abc", Options{SkipAuth: true})
	m := h.root
	require.Equal(t, routeHome, m.route)
	assert.False(t, m.home.hasSelection())
	for _, opt := range m.home.options {
		assert.NotContains(t, m.home.View(60), opt.Action)
	}

	// Without a choice the cursor only cycles over the cards.
	h.key(t, down)
	h.key(t, down)
	assert.Equal(t, 0, m.home.focus)
	assert.Equal(t, routeHome, m.route)

	h.key(t, enter)
	require.True(t, m.home.hasSelection())
	assert.Equal(t, assessment.ContextField, m.home.option().Tag)
	assert.Contains(t, m.home.View(60), m.home.option().Action)
}
