package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	highlightColor    = lipgloss.AdaptiveColor{Light: ColorDarkGreen, Dark: ColorGreen}
	inactiveTabStyle  = lipgloss.NewStyle().
				Border(inactiveTabBorder, true).
				BorderForeground(highlightColor).
				Foreground(lipgloss.Color(ColorGray)).
				Padding(0, 1)
	activeTabStyle = inactiveTabStyle.
			Border(activeTabBorder, true).
			Foreground(highlightColor).
			Bold(true)
	gapStyle = lipgloss.NewStyle().
			Border(tabBorderWithBottom(" ", "─", "─"), false, false, true, false).
			BorderForeground(highlightColor)
)

// TabBar is the bottom-navigation strip of the app shell, drawn as tabs across
// the top of the terminal. Each tab is marked as a mouse zone when a zone
// manager is attached.
type TabBar struct {
	tabs   []string
	active int
	width  int
	zones  *zone.Manager
}

func NewTabBar(zones *zone.Manager, tabs ...string) *TabBar {
	return &TabBar{tabs: tabs, zones: zones}
}

func (t *TabBar) SetSize(width int) {
	t.width = width
}

func (t *TabBar) SetActive(i int) {
	if i >= 0 && i < len(t.tabs) {
		t.active = i
	}
}

func (t *TabBar) Active() int {
	return t.active
}

func (t *TabBar) Len() int {
	return len(t.tabs)
}

func (t *TabBar) zoneID(i int) string {
	return "tab-" + t.tabs[i]
}

// TabAt returns the index of the tab under a mouse event, or -1.
func (t *TabBar) TabAt(msg tea.MouseMsg) int {
	if t.zones == nil {
		return -1
	}
	for i := range t.tabs {
		if info := t.zones.Get(t.zoneID(i)); info != nil && info.InBounds(msg) {
			return i
		}
	}
	return -1
}

func (t *TabBar) String() string {
	rendered := make([]string, 0, len(t.tabs)+1)
	for i, name := range t.tabs {
		style := inactiveTabStyle
		if i == t.active {
			style = activeTabStyle
		}
		tab := style.Render(name)
		if t.zones != nil {
			tab = t.zones.Mark(t.zoneID(i), tab)
		}
		rendered = append(rendered, tab)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
	if gap := t.width - lipgloss.Width(row) - 2; gap > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, gapStyle.Render(lipgloss.NewStyle().Width(gap).Render("")))
	}
	return row
}
