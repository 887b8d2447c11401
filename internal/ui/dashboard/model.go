// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/config"
	"github.com/jeranaias/statescope/internal/layout"
	"github.com/jeranaias/statescope/internal/logging"
	"github.com/jeranaias/statescope/internal/mapview"
	chatui "github.com/jeranaias/statescope/internal/ui/chat"
	"github.com/jeranaias/statescope/internal/ui/components"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Tab is a top-level view.
type Tab int

const (
	TabMap Tab = iota
	TabTrends
)

var tabNames = []string{"Map", "Trends"}

// Focus is the pane that receives keystrokes.
type Focus int

const (
	FocusMap Focus = iota
	FocusPanelChat
	FocusFilters
	FocusTrendsChat
	FocusSidebar
)

// Options configures New.
type Options struct {
	Config *config.Config
	Source Source
	Logger *logging.Logger
	// Reloads, when set, is a config.Watcher's Updates channel.
	Reloads <-chan config.Reload
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg     *config.Config
	src     Source
	log     *logging.Logger
	reloads <-chan config.Reload

	// Theme and chrome
	theme        *styles.Theme
	keys         KeyMap
	header       *components.Header
	status       *components.StatusBar
	toasts       *components.ToastManager
	toastTicking bool

	// Map
	grid    *mapview.Grid
	layout  mapview.Layout
	index   mapview.Index
	sel     mapview.Selection
	cursor  *mapview.Cursor
	cards   viewport.Model
	cardsOf string

	// Trends
	filters       *Filters
	timelineChart components.BarChart
	topicChart    components.BarChart

	// Chats
	global     *chatui.Global
	panelChat  *chatui.Thread
	trendsChat *chatui.Thread

	// Sidebar drag
	resizer   *layout.Resizer
	capture   bool
	handleHot bool

	data data

	width   int
	height  int
	sized   bool
	narrow  bool
	tab     Tab
	focus   Focus
	regions regions
}

// New creates the dashboard.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	grid := mapview.Default()

	m := &Model{
		cfg:     cfg,
		src:     opts.Source,
		log:     log.Named("dashboard"),
		reloads: opts.Reloads,

		theme:  theme,
		keys:   DefaultKeyMap(),
		header: components.NewHeader(theme, tabNames...),
		status: components.NewStatusBar(theme),
		toasts: components.NewToastManager(),

		grid:   grid,
		layout: mapview.DefaultLayout,
		index:  mapview.Index{},
		cursor: mapview.NewCursor(grid),
		cards:  viewport.New(0, 0),

		filters:       NewFilters(),
		timelineChart: components.NewBarChart(theme, "Policy Introductions by Year", false),
		topicChart:    components.NewBarChart(theme, "Policies by Topic", true),

		global:     chatui.NewGlobal(opts.Source, theme, log, cfg.UI.PlaceholderInterval()),
		panelChat:  chatui.NewPanel(opts.Source, theme, log, ""),
		trendsChat: chatui.NewTrends(opts.Source, theme, log),

		resizer: layout.NewResizer(layout.Config{
			Min:     cfg.UI.ChatMinWidth,
			Max:     cfg.UI.ChatMaxWidth,
			Default: cfg.UI.ChatWidth,
			Side:    layout.SideRight,
		}),

		data:   newData(),
		width:  120,
		height: 40,
	}
	m.resize()
	return m
}

// Init starts the initial fetches, the placeholder rotation and the config
// watcher chain.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		m.global.Init(),
		waitForReload(m.reloads),
	)
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.sized = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case ConfigReloadedMsg:
		return m, m.applyReload(msg)

	case chatui.AnswerMsg:
		var cmd tea.Cmd
		switch msg.Widget {
		case chatui.WidgetGlobal:
			cmd = m.global.Update(msg)
		case chatui.WidgetPanel:
			cmd = m.panelChat.Update(msg)
		case chatui.WidgetTrends:
			cmd = m.trendsChat.Update(msg)
		}
		return m, cmd

	case chatui.ErrorMsg:
		return m, m.toast(msg.Message, true)

	case chatui.CopiedMsg:
		if msg.Err != nil {
			m.log.Warn("clipboard copy failed", zap.Error(msg.Err))
			return m, m.toast("Copy failed: "+msg.Err.Error(), true)
		}
		return m, m.toast("Copied answer to clipboard", false)

	case chatui.PlaceholderTickMsg:
		return m, m.global.Update(msg)

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's id.
		return m, tea.Batch(
			m.global.Update(msg),
			m.panelChat.Update(msg),
			m.trendsChat.Update(msg),
		)

	case components.ToastTickMsg:
		if m.toasts.Tick(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil
	}

	if handled, cmd := m.handleResult(msg); handled {
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input. Dashboard bindings win over the
// focused pane.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.applyTransition(m.resizer.Close())
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.setTab((m.tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.FocusNext):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.FocusPrev):
		return m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Help):
		m.status.ToggleFullHelp()
		return nil
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissAll()
		return nil
	case key.Matches(msg, m.keys.Sidebar):
		return m.toggleSidebar()
	}

	switch m.focus {
	case FocusSidebar:
		cmd := m.global.Update(msg)
		m.resize()
		return cmd
	case FocusPanelChat:
		return m.panelChat.Update(msg)
	case FocusTrendsChat:
		return m.trendsChat.Update(msg)
	case FocusFilters:
		return m.filterKey(msg)
	default:
		return m.mapKey(msg)
	}
}

// =============================================================================
// TABS AND FOCUS
// =============================================================================

// Tab returns the active tab.
func (m *Model) Tab() Tab {
	return m.tab
}

// Focus returns the pane receiving keystrokes.
func (m *Model) Focus() Focus {
	return m.focus
}

func (m *Model) setTab(tab Tab) tea.Cmd {
	if tab == m.tab {
		return nil
	}
	m.tab = tab
	m.header.ActiveTab = int(tab)
	m.sel.Leave()
	m.resize()
	if m.focus == FocusSidebar {
		return nil
	}
	return m.setFocus(m.focusOrder()[0])
}

// focusOrder lists the panes tab cycles through on the active tab.
func (m *Model) focusOrder() []Focus {
	var order []Focus
	if m.tab == TabTrends {
		order = []Focus{FocusFilters, FocusTrendsChat}
	} else {
		order = []Focus{FocusMap}
		if m.sel.Selected() != "" {
			order = append(order, FocusPanelChat)
		}
	}
	if m.global.Visible() {
		order = append(order, FocusSidebar)
	}
	return order
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	i := 0
	for j, f := range order {
		if f == m.focus {
			i = j
			break
		}
	}
	n := len(order)
	return m.setFocus(order[((i+delta)%n+n)%n])
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	var cmds []tea.Cmd
	cmds = append(cmds,
		m.global.SetFocused(f == FocusSidebar),
		m.panelChat.SetFocused(f == FocusPanelChat),
		m.trendsChat.SetFocused(f == FocusTrendsChat),
	)
	return tea.Batch(cmds...)
}

// toggleSidebar expands or collapses the chat on narrow terminals.
func (m *Model) toggleSidebar() tea.Cmd {
	if !m.narrow {
		return nil
	}
	m.global.Session().ToggleExpanded()
	m.resize()
	if m.global.Visible() {
		return m.setFocus(FocusSidebar)
	}
	if m.focus == FocusSidebar {
		return m.setFocus(m.focusOrder()[0])
	}
	return nil
}

// =============================================================================
// THEME AND TOASTS
// =============================================================================

func (m *Model) setTheme(theme *styles.Theme) {
	theme.SetSize(m.width, m.height)
	m.theme = theme
	m.header.SetTheme(theme)
	m.status = components.NewStatusBar(theme)
	m.timelineChart.SetTheme(theme)
	m.topicChart.SetTheme(theme)
	m.global.SetTheme(theme)
	m.panelChat.SetTheme(theme)
	m.trendsChat.SetTheme(theme)
	m.resize()
}

// toast shows a notification and starts the expiry ticker if needed.
func (m *Model) toast(message string, isErr bool) tea.Cmd {
	if isErr {
		m.toasts.AddError(message)
	} else {
		m.toasts.AddSuccess(message)
	}
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

// Toasts exposes the notification stack.
func (m *Model) Toasts() *components.ToastManager {
	return m.toasts
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m *Model) applyReload(msg ConfigReloadedMsg) tea.Cmd {
	next := waitForReload(m.reloads)
	if msg.Err != nil || msg.Config == nil {
		m.log.Warn("config reload failed", zap.Error(msg.Err))
		text := "Config reload failed"
		if msg.Err != nil {
			text += ": " + msg.Err.Error()
		}
		return tea.Batch(next, m.toast(text, true))
	}
	return tea.Batch(next, m.ApplyConfig(msg.Config), m.toast("Configuration reloaded", false))
}

// ApplyConfig re-applies the UI settings of cfg. API settings take effect
// on the next start.
func (m *Model) ApplyConfig(cfg *config.Config) tea.Cmd {
	prev := m.cfg
	m.cfg = cfg

	var cmds []tea.Cmd
	if cfg.UI.Theme != prev.UI.Theme {
		m.setTheme(styles.NewTheme(cfg.UI.Theme))
	}
	m.resizer.SetBounds(cfg.UI.ChatMinWidth, cfg.UI.ChatMaxWidth, cfg.UI.ChatWidth)
	if cfg.UI.ChatWidth != prev.UI.ChatWidth {
		m.resizer.Reset()
	}
	cmds = append(cmds, m.global.SetPlaceholderInterval(cfg.UI.PlaceholderInterval()))

	if cfg.UI.Mouse != prev.UI.Mouse {
		if cfg.UI.Mouse {
			cmds = append(cmds, tea.EnableMouseAllMotion)
		} else {
			m.applyTransition(m.resizer.End())
			cmds = append(cmds, tea.DisableMouse)
		}
	}
	if cfg.API.BaseURL != prev.API.BaseURL {
		m.log.Info("api.base_url changed; restart to apply", zap.String("base_url", cfg.API.BaseURL))
	}

	m.log.Info("config reloaded",
		zap.String("theme", cfg.UI.Theme),
		zap.Int("chat_width", cfg.UI.ChatWidth),
		zap.Bool("mouse", cfg.UI.Mouse))
	m.resize()
	return tea.Batch(cmds...)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the dashboard.
func (m *Model) View() string {
	r := m.regions

	var body string
	switch {
	case m.narrow && m.global.Visible():
		body = box(m.global.View(), r.sidebar.W, r.sidebar.H)
	case m.narrow:
		body = lipgloss.JoinVertical(lipgloss.Left,
			box(m.mainView(), r.main.W, r.main.H),
			box(m.global.View(), r.sidebar.W, r.sidebar.H))
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			box(m.mainView(), r.main.W, r.main.H),
			m.handleView(r.handle.H),
			box(m.global.View(), r.sidebar.W, r.sidebar.H))
	}

	m.status.SetMessage(m.statusMessage())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.status.View(m.helpKeys()))
}

func (m *Model) mainView() string {
	var content string
	if m.tab == TabTrends {
		content = m.trendsView()
	} else {
		content = m.mapTabView()
	}
	content = box(content, m.regions.main.W, m.regions.main.H)

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		content = overlayBottomRight(content, renderToasts(toasts), m.regions.main.W)
	}
	return content
}

func (m *Model) handleView(height int) string {
	style := m.theme.SidebarHandle
	glyph := "│"
	if m.capture || m.handleHot {
		style = m.theme.SidebarHandleHot
		glyph = "┃"
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = glyph
	}
	if height > 2 {
		lines[height/2] = "⋮"
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) helpKeys() help.KeyMap {
	switch m.focus {
	case FocusSidebar:
		return m.global.Help()
	case FocusPanelChat:
		return m.panelChat.Help()
	case FocusTrendsChat:
		return m.trendsChat.Help()
	case FocusFilters:
		return filterHelp{m.keys}
	default:
		return mapHelp{m.keys}
	}
}

func (m *Model) statusMessage() string {
	if m.capture {
		w, _ := m.resizer.Width()
		return "chat width " + itoa(w)
	}
	if m.data.states.Loading && !m.data.states.Loaded() {
		return "Loading states..."
	}
	return ""
}
