package app

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/log"
	"github.com/ByteMirror/growlens/recraft"
	"github.com/ByteMirror/growlens/ui"
	"github.com/ByteMirror/growlens/ui/overlay"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// imageTypes are the extensions offered by the photo picker.
var imageTypes = []string{".png", ".jpg", ".jpeg", ".webp"}

// submissionDoneMsg carries the outcome of one submission back to the
// assessment visit that started it.
type submissionDoneMsg struct {
	visit string
	url   string
	err   error
}

type itemKind int

const (
	itemPhoto itemKind = iota
	itemDimension
	itemPreference
	itemPrompt
	itemSubmit
)

type formItem struct {
	kind itemKind
	// dim is set for itemDimension, pref for itemPreference.
	dim  assessment.Dimension
	pref string
}

// assessmentScreen is one visit to the assessment tab. It is built fresh every
// time the tab is entered, so the token and the form never outlive the visit.
type assessmentScreen struct {
	visit       string
	form        assessment.Form
	transformer assessment.Transformer
	hasToken    bool

	analyzing bool
	resultURL string
	errBox    *ui.ErrBox

	items []formItem
	focus int
	dims  [3]textinput.Model

	width    int
	vp       viewport.Model
	recs     string
	recWidth int
}

func newAssessmentScreen(ctx assessment.ContextTag, prompt string, t assessment.Transformer, hasToken bool) *assessmentScreen {
	a := &assessmentScreen{
		visit:       uuid.NewString(),
		form:        assessment.NewForm(ctx, prompt),
		transformer: t,
		hasToken:    hasToken,
		errBox:      ui.NewErrBox(),
		vp:          viewport.New(0, 0),
	}

	a.items = append(a.items, formItem{kind: itemPhoto})
	for _, d := range []assessment.Dimension{assessment.Width, assessment.Height, assessment.Depth} {
		in := textinput.New()
		in.Placeholder = "0"
		in.CharLimit = 8
		in.Width = 10
		a.dims[d] = in
		a.items = append(a.items, formItem{kind: itemDimension, dim: d})
	}
	if ctx == assessment.ContextUrban {
		for _, p := range assessment.Preferences {
			a.items = append(a.items, formItem{kind: itemPreference, pref: p})
		}
	}
	a.items = append(a.items, formItem{kind: itemPrompt}, formItem{kind: itemSubmit})

	log.DebugLog.Printf("assessment visit %s opened (context=%q, token=%t)", a.visit, ctx, hasToken)
	return a
}

func (a *assessmentScreen) setWidth(width int) {
	a.width = width
	a.errBox.SetSize(width)
}

func (a *assessmentScreen) setHeight(height int) {
	a.vp.Width = a.width + 2
	a.vp.Height = height
}

func (a *assessmentScreen) current() formItem {
	return a.items[a.focus]
}

func (a *assessmentScreen) typing() bool {
	return a.current().kind == itemDimension
}

func (a *assessmentScreen) setFocus(i int) tea.Cmd {
	a.focus = (i + len(a.items)) % len(a.items)
	for d := range a.dims {
		a.dims[d].Blur()
	}
	if it := a.current(); it.kind == itemDimension {
		return a.dims[it.dim].Focus()
	}
	return nil
}

// updateInput feeds msg to the focused dimension input. Only digits and a
// decimal point are accepted as typed text.
func (a *assessmentScreen) updateInput(msg tea.Msg) tea.Cmd {
	it := a.current()
	if it.kind != itemDimension {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes && !numeric(k.Runes) {
		return nil
	}
	var cmd tea.Cmd
	a.dims[it.dim], cmd = a.dims[it.dim].Update(msg)
	a.form = a.form.WithDimension(it.dim, a.dims[it.dim].Value())
	return cmd
}

func numeric(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

// setImage replaces the photo. Any earlier result or error belongs to the old
// photo and is dropped.
func (a *assessmentScreen) setImage(path string) {
	a.form = a.form.WithImage(path)
	a.resultURL = ""
	a.errBox.Clear()
}

// startSubmit validates the form and returns the command that runs the
// submission. It returns nil when nothing should be sent, including while an
// earlier submission is still in flight.
func (a *assessmentScreen) startSubmit(ctx context.Context) tea.Cmd {
	if a.analyzing {
		return nil
	}
	if !a.form.HasImage() {
		a.errBox.SetError(assessment.ErrNoImage)
		return nil
	}
	if !a.hasToken {
		a.errBox.SetError(recraft.ErrMissingToken)
		return nil
	}

	a.analyzing = true
	a.errBox.Clear()
	visit, form, t := a.visit, a.form, a.transformer
	log.InfoLog.Printf("submitting assessment visit %s (image=%s)", visit, form.ImagePath)
	return func() tea.Msg {
		url, err := assessment.Submit(ctx, t, form)
		return submissionDoneMsg{visit: visit, url: url, err: err}
	}
}

// finishSubmit applies a submission result. The previous result stays on
// screen when the new submission fails.
func (a *assessmentScreen) finishSubmit(msg submissionDoneMsg) {
	a.analyzing = false
	if msg.err != nil {
		log.ErrorLog.Printf("assessment visit %s failed: %v", a.visit, msg.err)
		a.errBox.SetError(msg.err)
		return
	}
	log.InfoLog.Printf("assessment visit %s rendered %s", a.visit, msg.url)
	a.resultURL = msg.url
	a.errBox.Clear()
}

func (a *assessmentScreen) recommendations() string {
	if a.recs != "" && a.recWidth == a.width {
		return a.recs
	}
	a.recWidth = a.width
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(a.width),
	)
	if err == nil {
		if out, err := r.Render(assessment.RecommendationsMarkdown()); err == nil {
			a.recs = strings.Trim(out, "\n")
			return a.recs
		}
	}
	var b strings.Builder
	b.WriteString(ui.SectionStyle.Render("Recommendations") + "\n")
	b.WriteString(ui.SubtitleStyle.Render("Based on your space analysis, we recommend:"))
	for _, rec := range assessment.Recommendations() {
		b.WriteString("\n  • " + rec)
	}
	a.recs = b.String()
	return a.recs
}

// truncatePath keeps the tail of a path, which holds the file name.
func truncatePath(p string, width int) string {
	if width <= 1 || runewidth.StringWidth(p) <= width {
		return p
	}
	rs := []rune(p)
	for runewidth.StringWidth(string(rs))+1 > width {
		rs = rs[1:]
	}
	return "…" + string(rs)
}

func (a *assessmentScreen) View(spinner string) string {
	var lines []string
	focusLine := 0
	add := func(s string, focused bool) {
		if focused {
			focusLine = len(lines)
		}
		lines = append(lines, strings.Split(s, "\n")...)
	}

	add(ui.TitleStyle.Render("Space Assessment"), false)
	add(ui.SubtitleStyle.Render("Let's analyze your growing space"), false)

	for i, it := range a.items {
		focused := i == a.focus
		switch it.kind {
		case itemPhoto:
			var photo string
			switch {
			case a.form.HasImage():
				photo = ui.TitleStyle.Render("Photo") + "\n" +
					ui.SubtitleStyle.Render(truncatePath(a.form.ImagePath, a.width-8))
			default:
				photo = ui.TitleStyle.Render("Upload space photo") + "\n" +
					ui.SubtitleStyle.Render("Press enter to choose a photo")
			}
			add("", false)
			add(ui.Card(photo, a.width, a.form.HasImage(), focused), focused)
		case itemDimension:
			if it.dim == assessment.Width {
				add(ui.SectionStyle.Render("Space Dimensions"), false)
			}
			label := lipgloss.NewStyle().Width(14).Render(ui.LabelStyle.Render(it.dim.String()))
			add(lipgloss.JoinHorizontal(lipgloss.Top, label, a.dims[it.dim].View()), focused)
			if focused {
				lines[len(lines)-1] = "▸ " + lines[len(lines)-1]
			} else {
				lines[len(lines)-1] = "  " + lines[len(lines)-1]
			}
		case itemPreference:
			if it.pref == assessment.Preferences[0] {
				add(ui.SectionStyle.Render("Growing Preferences"), false)
			}
			add(ui.Checkbox(it.pref, a.form.Selected(it.pref), focused), focused)
		case itemPrompt:
			add(ui.SectionStyle.Render("Prompt"), false)
			add(ui.Card(a.form.Prompt, a.width, false, focused), focused)
		case itemSubmit:
			label := "Analyze My Space"
			if a.analyzing {
				label = spinner + " Analyzing..."
			}
			add("", false)
			if e := a.errBox.String(); e != "" {
				add(e, false)
			}
			add(ui.Button(label, focused, a.analyzing), focused)
		}
	}

	if a.resultURL != "" {
		add("", false)
		add(ui.SectionStyle.Render("Rendered space"), false)
		add(lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorGreen)).Underline(true).Render(a.resultURL), false)
		add(ui.LabelStyle.Render("press c to copy the link"), false)
		add("", false)
		add(a.recommendations(), false)
		if a.current().kind == itemSubmit {
			focusLine = len(lines) - 1
		}
	}

	content := strings.Join(lines, "\n")
	if a.vp.Height <= 0 {
		return content
	}
	a.vp.SetContent(content)
	switch {
	case focusLine < a.vp.YOffset:
		a.vp.SetYOffset(focusLine)
	case focusLine >= a.vp.YOffset+a.vp.Height:
		a.vp.SetYOffset(focusLine - a.vp.Height + 1)
	}
	return a.vp.View()
}

func (m *root) handleAssessmentKey(name keys.KeyName) tea.Cmd {
	a := m.assess
	if a == nil {
		return nil
	}
	switch name {
	case keys.KeyUp:
		return a.setFocus(a.focus - 1)
	case keys.KeyDown:
		return a.setFocus(a.focus + 1)
	case keys.KeyBack:
		return m.navigate(routeHome)
	case keys.KeyCopy:
		return m.copyResult()
	case keys.KeyEnter:
		switch it := a.current(); it.kind {
		case itemPhoto:
			return m.openPicker()
		case itemDimension:
			return a.setFocus(a.focus + 1)
		case itemPreference:
			a.form = a.form.TogglePreference(it.pref)
		case itemPrompt:
			m.textInputOverlay = overlay.NewTextInputOverlay("Assessment prompt", a.form.Prompt)
			m.textInputOverlay.Hint = "enter to save • alt+enter for a new line • esc to cancel"
			m.textInputOverlay.SetWidth(m.overlayWidth())
			m.state = statePrompt
		case itemSubmit:
			return m.submit()
		}
	}
	return nil
}

func (m *root) submit() tea.Cmd {
	if m.assess == nil {
		return nil
	}
	cmd := m.assess.startSubmit(m.ctx)
	if cmd == nil {
		return nil
	}
	m.pendingToasts[m.assess.visit] = m.toasts.Loading("Analyzing your space...")
	return tea.Batch(cmd, m.spinner.Tick, m.ensureToastTick())
}

// handleSubmissionDone applies a result to the visit that asked for it.
// Results for a visit that has been left are dropped.
func (m *root) handleSubmissionDone(msg submissionDoneMsg) tea.Cmd {
	toastID, pending := m.pendingToasts[msg.visit]
	delete(m.pendingToasts, msg.visit)

	if m.assess == nil || m.assess.visit != msg.visit {
		log.DebugLog.Printf("dropping result for closed visit %s", msg.visit)
		if pending {
			m.toasts.Resolve(toastID, overlay.ToastInfo, "Assessment closed, result discarded")
		}
		return nil
	}
	m.assess.finishSubmit(msg)
	m.updateMenu()

	typ, text := overlay.ToastSuccess, "Your space has been rendered"
	if msg.err != nil {
		typ, text = overlay.ToastError, "Analysis failed"
	}
	if !pending {
		return m.toast(typ, text)
	}
	m.toasts.Resolve(toastID, typ, text)
	return m.ensureToastTick()
}

func (m *root) copyResult() tea.Cmd {
	if m.assess == nil || m.assess.resultURL == "" {
		return nil
	}
	if err := clipboard.WriteAll(m.assess.resultURL); err != nil {
		log.WarningLog.Printf("failed to copy url: %v", err)
		return m.toast(overlay.ToastError, "Could not copy link")
	}
	return m.toast(overlay.ToastInfo, "Link copied to clipboard")
}

func (m *root) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = imageTypes
	fp.CurrentDirectory = m.cfg.PickerDir()
	fp.Height = m.pickerHeight()
	m.picker = fp
	m.state = statePicker
	return m.picker.Init()
}

func (m *root) closePicker() {
	m.state = stateDefault
	m.picker = filepicker.Model{}
}

func (m *root) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closePicker()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.closePicker()
		if m.assess != nil {
			m.assess.setImage(path)
		}
		log.DebugLog.Printf("picked image %s", path)
		return m, cmd
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return m, m.toast(overlay.ToastError, fmt.Sprintf("%s is not an image", truncatePath(path, 24)))
	}
	return m, cmd
}

func (m *root) pickerView() string {
	title := ui.TitleStyle.Render("Choose a photo")
	dir := ui.SubtitleStyle.Render(truncatePath(m.picker.CurrentDirectory, m.overlayWidth()-6))
	hint := ui.LabelStyle.Render("enter to open • backspace to go up • esc to cancel")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ui.ColorGreen)).
		Padding(1, 2).
		Width(m.overlayWidth()).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, dir, "", m.picker.View(), "", hint))
}

// handleTextInputKey drives the prompt and token editors.
func (m *root) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if !m.textInputOverlay.HandleKeyPress(msg) {
		return m, nil
	}

	st := m.state
	in := m.textInputOverlay
	m.textInputOverlay = nil
	m.state = stateDefault
	if !in.IsSubmitted() {
		return m, nil
	}

	switch st {
	case statePrompt:
		if m.assess != nil {
			m.assess.form = m.assess.form.WithPrompt(strings.TrimSpace(in.GetValue()))
		}
	case stateToken:
		return m, m.saveToken(strings.TrimSpace(in.GetValue()))
	}
	return m, nil
}

func (m *root) saveToken(token string) tea.Cmd {
	if m.tokens == nil {
		return m.toast(overlay.ToastError, "No token store available")
	}
	if err := m.tokens.SetToken(token); err != nil {
		log.ErrorLog.Printf("failed to save token: %v", err)
		return m.toast(overlay.ToastError, "Failed to save API token")
	}
	log.InfoLog.Printf("api token updated (%s)", log.RedactToken(token))
	if m.settings != nil {
		m.settings.tokenSet = token != ""
	}
	if token == "" {
		return m.toast(overlay.ToastInfo, "API token removed")
	}
	return m.toast(overlay.ToastSuccess, "API token saved")
}

