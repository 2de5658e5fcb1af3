package ui

import (
	"testing"

	"github.com/ByteMirror/growlens/keys"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTabBar(t *testing.T) {
	tb := NewTabBar(nil, "Home", "Assessment", "Location", "Settings")
	tb.SetSize(80)

	assert.Equal(t, 4, tb.Len())
	assert.Equal(t, 0, tb.Active())

	tb.SetActive(2)
	assert.Equal(t, 2, tb.Active())

	tb.SetActive(9)
	assert.Equal(t, 2, tb.Active(), "out of range index is ignored")

	out := stripAnsi(tb.String())
	for _, name := range []string{"Home", "Assessment", "Location", "Settings"} {
		assert.Contains(t, out, name)
	}

	assert.Equal(t, -1, tb.TabAt(tea.MouseMsg{X: 1, Y: 1}), "no zones, no hits")
}

func TestMenuShowsBindings(t *testing.T) {
	m := NewMenu()
	m.SetSize(100)
	m.SetOptions(keys.KeyNextTab, keys.KeyCopy, keys.KeyQuit)

	out := stripAnsi(m.String())
	assert.Contains(t, out, "next tab")
	assert.Contains(t, out, "copy url")
	assert.Contains(t, out, "quit")
	assert.NotContains(t, out, "help")
}

func TestErrBox(t *testing.T) {
	e := NewErrBox()
	e.SetSize(40)
	assert.Empty(t, e.String(), "hidden without an error")

	e.SetMessage("Please upload an image first")
	assert.Contains(t, stripAnsi(e.String()), "Please upload an image first")

	e.Clear()
	assert.Empty(t, e.Message())
	assert.Empty(t, e.String())
}
