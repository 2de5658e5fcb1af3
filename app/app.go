package app

import (
	"context"
	"time"

	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/config"
	"github.com/ByteMirror/growlens/keys"
	"github.com/ByteMirror/growlens/log"
	"github.com/ByteMirror/growlens/recraft"
	"github.com/ByteMirror/growlens/ui"
	"github.com/ByteMirror/growlens/ui/overlay"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Options wires the TUI to its configuration and collaborators.
type Options struct {
	Config *config.Config
	Tokens config.TokenStore
	// NewTransformer builds the API client for a resolved token. Nil means a
	// recraft.Client configured from Config.
	NewTransformer func(token string) assessment.Transformer
	// SkipAuth starts on the home tab instead of the welcome screen.
	SkipAuth bool
	// Context and Prompt, when Context is set, open an assessment right away.
	Context assessment.ContextTag
	Prompt  string
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, opts Options) error {
	zones := zone.New()
	defer zones.Close()

	p := tea.NewProgram(
		newRoot(ctx, opts, zones),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// statePicker is the state when the photo picker is open.
	statePicker
	// statePrompt is the state when the assessment prompt is being edited.
	statePrompt
	// stateToken is the state when the API token is being entered.
	stateToken
	// stateHelp is the state when the help screen is displayed.
	stateHelp
)

type root struct {
	ctx context.Context

	// -- Configuration --

	cfg            *config.Config
	tokens         config.TokenStore
	newTransformer func(token string) assessment.Transformer
	// promptOverride is handed to assessments opened from the home screen.
	promptOverride string

	// -- State --

	route route
	state state

	login    *loginScreen
	home     *homeScreen
	assess   *assessmentScreen
	settings *settingsScreen

	width, height int

	// -- UI Components --

	tabBar  *ui.TabBar
	menu    *ui.Menu
	toasts  *overlay.ToastManager
	spinner spinner.Model
	zones   *zone.Manager

	picker           filepicker.Model
	textInputOverlay *overlay.TextInputOverlay
	textOverlay      *overlay.TextOverlay

	toastTicking bool
	// loading toast per visit with a submission in flight
	pendingToasts map[string]string
}

func newRoot(ctx context.Context, opts Options, zones *zone.Manager) *root {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &root{
		ctx:            ctx,
		cfg:            cfg,
		tokens:         opts.Tokens,
		newTransformer: opts.NewTransformer,
		promptOverride: opts.Prompt,
		spinner:        spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		zones:          zones,
		login:          newLoginScreen(),
		home:           newHomeScreen(),
		menu:           ui.NewMenu(),
		pendingToasts:  make(map[string]string),
	}
	m.toasts = overlay.NewToastManager(&m.spinner)
	m.tabBar = ui.NewTabBar(zones, tabNames()...)
	// Until the first WindowSizeMsg arrives.
	m.setSize(80, 40)
	if m.newTransformer == nil {
		m.newTransformer = m.recraftTransformer
	}

	switch {
	case opts.Context != "":
		m.openAssessment(opts.Context, opts.Prompt)
	case opts.SkipAuth:
		m.navigate(routeHome)
	default:
		m.navigate(routeWelcome)
	}
	return m
}

func (m *root) recraftTransformer(token string) assessment.Transformer {
	return recraft.NewClient(m.cfg.ClientConfig(token))
}

func (m *root) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *root) setSize(width, height int) {
	m.width = width
	m.height = height
	m.tabBar.SetSize(width)
	m.menu.SetSize(width)
	if m.assess != nil {
		m.assess.setWidth(m.contentWidth())
		m.assess.setHeight(m.tabBodyHeight())
	}
	if m.textInputOverlay != nil {
		m.textInputOverlay.SetWidth(m.overlayWidth())
	}
	m.picker.Height = m.pickerHeight()
}

func (m *root) contentWidth() int {
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

// tabBodyHeight is the room left for a tab's content under the tab bar and
// above the key hints.
func (m *root) tabBodyHeight() int {
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

func (m *root) overlayWidth() int {
	w := m.width * 6 / 10
	if w < 40 {
		w = 40
	}
	return w
}

func (m *root) pickerHeight() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

func (m *root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case overlay.ToastTickMsg:
		m.toasts.Tick()
		if m.toasts.HasActiveToasts() {
			return m, toastTick()
		}
		m.toastTicking = false
		return m, nil
	case submissionDoneMsg:
		return m, m.handleSubmissionDone(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	// Everything else is internal traffic of the focused bubble: directory
	// listings for the picker, cursor blinks for inputs.
	if m.state == statePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, m.updateFocusedInput(msg)
}

func (m *root) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateDefault || !m.route.isTab() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	// The wheel walks the assessment form.
	if m.route == routeAssessment && m.assess != nil {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.assess.setFocus(m.assess.focus - 1)
		case tea.MouseButtonWheelDown:
			return m, m.assess.setFocus(m.assess.focus + 1)
		}
	}

	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if i := m.tabBar.TabAt(msg); i >= 0 {
		return m, m.navigate(tabRoutes[i])
	}
	return m, nil
}

// typing reports whether a text field has focus, in which case plain letters
// go to the field rather than to the global key map.
func (m *root) typing() bool {
	switch m.route {
	case routeLogin:
		return m.login.typing()
	case routeAssessment:
		return m.assess != nil && m.assess.typing()
	}
	return false
}

func (m *root) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePicker:
		return m.handlePickerKey(msg)
	case statePrompt, stateToken:
		return m.handleTextInputKey(msg)
	case stateHelp:
		m.textOverlay.HandleKeyPress(msg)
		m.textOverlay = nil
		m.state = stateDefault
		return m, nil
	}

	name, ok := keys.Lookup(msg.String(), m.typing())
	if !ok {
		return m, m.updateFocusedInput(msg)
	}

	switch name {
	case keys.KeyForceQuit, keys.KeyQuit:
		return m, tea.Quit
	case keys.KeyHelp:
		m.showHelp()
		return m, nil
	}

	if m.route.isTab() {
		if cmd, handled := m.handleTabKey(name); handled {
			return m, cmd
		}
	}

	switch m.route {
	case routeWelcome:
		if name == keys.KeyEnter {
			return m, m.navigate(routeLogin)
		}
	case routeLogin:
		return m, m.handleLoginKey(name)
	case routeSignup:
		if name == keys.KeyEnter || name == keys.KeyBack {
			return m, m.navigate(routeLogin)
		}
	case routeHome:
		return m, m.handleHomeKey(name)
	case routeAssessment:
		return m, m.handleAssessmentKey(name)
	case routeSettings:
		return m, m.handleSettingsKey(name)
	}
	return m, nil
}

func (m *root) handleTabKey(name keys.KeyName) (tea.Cmd, bool) {
	i := m.route.tabIndex()
	n := len(tabRoutes)
	switch name {
	case keys.KeyNextTab:
		return m.navigate(tabRoutes[(i+1)%n]), true
	case keys.KeyPrevTab:
		return m.navigate(tabRoutes[(i-1+n)%n]), true
	case keys.KeyHomeTab:
		return m.navigate(routeHome), true
	case keys.KeyAssessmentTab:
		return m.navigate(routeAssessment), true
	case keys.KeyLocationTab:
		return m.navigate(routeLocation), true
	case keys.KeySettingsTab:
		return m.navigate(routeSettings), true
	}
	return nil, false
}

// navigate switches screens. Leaving the assessment discards its form.
func (m *root) navigate(to route) tea.Cmd {
	if m.route == routeAssessment && to != routeAssessment && m.assess != nil {
		log.DebugLog.Printf("discarding assessment visit %s", m.assess.visit)
		m.assess = nil
	}
	from := m.route
	m.route = to
	if i := to.tabIndex(); i >= 0 {
		m.tabBar.SetActive(i)
	}
	log.DebugLog.Printf("navigate %s -> %s", from, to)

	var cmd tea.Cmd
	switch to {
	case routeLogin:
		cmd = m.login.reset()
	case routeAssessment:
		if m.assess == nil {
			m.openAssessment("", m.promptOverride)
		}
	case routeSettings:
		m.settings = newSettingsScreen(m.tokenIsSet())
	}
	m.updateMenu()
	return cmd
}

// openAssessment mounts a fresh assessment for ctx. The token is read here,
// once per visit.
func (m *root) openAssessment(ctx assessment.ContextTag, prompt string) {
	if prompt == "" {
		prompt = m.cfg.DefaultPrompt
	}
	token := config.ResolveToken(m.tokens, recraft.DefaultToken)
	m.assess = newAssessmentScreen(ctx, prompt, m.newTransformer(token), token != "")
	m.assess.setWidth(m.contentWidth())
	m.assess.setHeight(m.tabBodyHeight())
	m.route = routeAssessment
	m.tabBar.SetActive(routeAssessment.tabIndex())
	m.updateMenu()
}

func (m *root) tokenIsSet() bool {
	if m.tokens == nil {
		return false
	}
	token, err := m.tokens.GetToken()
	if err != nil {
		log.WarningLog.Printf("failed to read token: %v", err)
		return false
	}
	return token != ""
}

func (m *root) updateMenu() {
	switch {
	case m.route == routeAssessment && m.assess != nil && m.assess.resultURL != "":
		m.menu.SetOptions(keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyCopy, keys.KeyNextTab, keys.KeyHelp, keys.KeyQuit)
	case m.route.isTab():
		m.menu.SetOptions(keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyNextTab, keys.KeyHelp, keys.KeyQuit)
	default:
		m.menu.SetOptions(keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyBack, keys.KeyQuit)
	}
}

// updateFocusedInput forwards msg to whichever text input has focus.
func (m *root) updateFocusedInput(msg tea.Msg) tea.Cmd {
	switch m.route {
	case routeLogin:
		return m.login.updateInput(msg)
	case routeAssessment:
		if m.assess != nil {
			return m.assess.updateInput(msg)
		}
	}
	return nil
}

func (m *root) showHelp() {
	m.textOverlay = overlay.NewTextOverlay(helpContent())
	m.textOverlay.SetWidth(m.overlayWidth())
	m.state = stateHelp
}

// toast shows a notification and makes sure the expiry ticker runs.
func (m *root) toast(typ overlay.ToastType, msg string) tea.Cmd {
	switch typ {
	case overlay.ToastSuccess:
		m.toasts.Success(msg)
	case overlay.ToastError:
		m.toasts.Error(msg)
	default:
		m.toasts.Info(msg)
	}
	return m.ensureToastTick()
}

func (m *root) ensureToastTick() tea.Cmd {
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return toastTick()
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return overlay.ToastTickMsg{}
	})
}

func (m *root) View() string {
	var content string
	switch m.route {
	case routeWelcome:
		content = m.welcomeView()
	case routeLogin:
		content = m.login.View(m.contentWidth())
	case routeSignup:
		content = m.signupView()
	case routeHome:
		content = m.home.View(m.contentWidth())
	case routeAssessment:
		if m.assess != nil {
			content = m.assess.View(m.spinner.View())
		}
	case routeLocation:
		content = m.locationView()
	case routeSettings:
		content = m.settings.View(m.contentWidth())
	}

	var body string
	if m.route.isTab() {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.tabBar.String(),
			lipgloss.NewStyle().Padding(1, 2).Render(content),
		)
	} else {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}

	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		m.menu.String(),
	)

	switch m.state {
	case statePicker:
		mainView = overlay.Center(m.pickerView(), m.width, m.height)
	case statePrompt, stateToken:
		if m.textInputOverlay != nil {
			mainView = overlay.Center(m.textInputOverlay.Render(), m.width, m.height)
		}
	case stateHelp:
		if m.textOverlay != nil {
			mainView = overlay.Center(m.textOverlay.Render(), m.width, m.height)
		}
	}

	mainView = overlay.TopRight(m.toasts.View(), mainView, m.width)
	if m.zones != nil {
		return m.zones.Scan(mainView)
	}
	return mainView
}
