package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/logtail"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/recommend"
	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewOrders
	ViewCollections
	ViewAbout
	ViewActivity
	viewCount
)

var viewNames = [viewCount]string{"catalog", "cart", "orders", "collections", "about", "activity"}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "catalog"
	}
	return viewNames[v]
}

// parseView maps a preference value onto a view, defaulting to the catalog.
func parseView(name string) View {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range viewNames {
		if n == name {
			return View(i)
		}
	}
	return ViewCatalog
}

const (
	pollTick      = time.Second
	activityLines = 500
	flashLifetime = 6 * time.Second
	ownerRequired = "owner login required (L)"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Recommender *recommend.Service // nil disables suggestions
	LogPath     string
	Prefs       prefs.Prefs
	PrefsPath   string
	Logger      *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	recommender *recommend.Service
	logger      *slog.Logger
	logPath     string
	prefs       prefs.Prefs
	prefsPath   string
	keys        keyMap
	help        help.Model

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	cursors     [viewCount]int

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Catalog state
	itemDetail   bool
	suggestions  []shop.Item
	suggestQuery string
	pendingQuery string
	thinking     bool

	// Collections state
	openCollection *shop.Collection
	memberCursor   int

	// Activity state
	activity         []logtail.Entry
	activityLevel    slog.Level
	activityViewport viewport.Model

	// Modals
	form    *form
	confirm *confirmPrompt

	// Transient status line
	flash     string
	flashErr  bool
	flashedAt time.Time
}

// confirmPrompt asks y/n before a destructive owner action.
type confirmPrompt struct {
	question string
	onYes    func(m *Model) tea.Cmd
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:           ctx,
		store:         opts.Store,
		recommender:   opts.Recommender,
		logger:        logger,
		logPath:       opts.LogPath,
		prefs:         p,
		prefsPath:     prefsPath,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		theme:         GetTheme(p.Theme),
		currentView:   parseView(p.View),
		activityLevel: slog.LevelInfo,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewActivity {
		cmds = append(cmds, loadActivityCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.activityViewport = viewport.New(m.width, m.contentHeight())
		}
		m.ready = true
		m.activityViewport.Width = m.width
		m.activityViewport.Height = m.contentHeight()
		m.updateActivityViewport(false)
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case storeChangedMsg:
		m.refresh()
		return m, nil

	case snapshotMsg:
		m.setSnapshot(state.Snapshot(msg))
		return m, nil

	case opResultMsg:
		if msg.err != nil {
			m.setFlash(msg.action+" failed: "+msg.err.Error(), true)
		} else if msg.action != "" {
			m.setFlash(msg.action, false)
		}
		m.refresh()
		return m, nil

	case recommendMsg:
		return m.handleRecommendation(msg)

	case activityMsg:
		if msg.err != nil {
			m.setFlash("read log: "+msg.err.Error(), true)
			return m, nil
		}
		m.activity = msg.entries
		m.updateActivityViewport(true)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.form != nil {
		return m.renderModal(m.form.view(m.theme.Styles(), m.modalWidth()))
	}
	if m.confirm != nil {
		return m.renderModal(m.renderConfirm())
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.confirm != nil {
		prompt := m.confirm
		m.confirm = nil
		if msg.String() == "y" || msg.String() == "Y" {
			cmd := prompt.onYes(&m)
			return m, cmd
		}
		m.setFlash("cancelled", false)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
				m.logger.Warn("save prefs failed", "error", err)
			}
		}
		m.updateActivityViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView((m.currentView + 1) % viewCount)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView((m.currentView + viewCount - 1) % viewCount)

	case key.Matches(msg, m.keys.ViewCatalog):
		return m.switchView(ViewCatalog)
	case key.Matches(msg, m.keys.ViewCart):
		return m.switchView(ViewCart)
	case key.Matches(msg, m.keys.ViewOrders):
		return m.switchView(ViewOrders)
	case key.Matches(msg, m.keys.ViewCollections):
		return m.switchView(ViewCollections)
	case key.Matches(msg, m.keys.ViewAbout):
		return m.switchView(ViewAbout)
	case key.Matches(msg, m.keys.ViewActivity):
		return m.switchView(ViewActivity)

	case key.Matches(msg, m.keys.Login):
		return m.toggleLogin()

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.itemDetail:
			m.itemDetail = false
		case m.openCollection != nil:
			m.openCollection = nil
		case len(m.suggestions) > 0 && m.currentView == ViewCatalog:
			m.suggestions = nil
			m.suggestQuery = ""
		default:
			m.currentView = ViewCatalog
		}
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	case ViewCollections:
		return m.handleCollectionsKey(msg)
	case ViewAbout:
		return m.handleAboutKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.itemDetail = false
	if v == ViewActivity {
		return m, loadActivityCmd(m.logPath)
	}
	return m, nil
}

func (m Model) toggleLogin() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if m.store.IsOwner() {
		m.store.Logout()
		m.refresh()
		m.setFlash("signed out", false)
		return m, nil
	}
	m.form = loginForm()
	return m, nil
}

// moveCursor applies the shared list navigation keys. It reports whether
// msg was a navigation key.
func (m *Model) moveCursor(msg tea.KeyMsg, cursor *int, total int) bool {
	switch {
	case key.Matches(msg, m.keys.Down):
		*cursor = clamp(*cursor+1, total)
	case key.Matches(msg, m.keys.Up):
		*cursor = clamp(*cursor-1, total)
	case key.Matches(msg, m.keys.Top):
		*cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		*cursor = clamp(total-1, total)
	default:
		return false
	}
	return true
}

// requireOwner flashes a hint and reports false when not logged in.
func (m *Model) requireOwner() bool {
	if m.snapshot.Owner {
		return true
	}
	m.setFlash(ownerRequired, true)
	return false
}

// handleTick processes the polling tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewActivity {
		cmds = append(cmds, loadActivityCmd(m.logPath))
	}
	if m.flash != "" && now.Sub(m.flashedAt) > flashLifetime {
		m.flash = ""
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.setSnapshot(m.store.Snapshot())
}

func (m *Model) setSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	m.cursors[ViewCatalog] = clamp(m.cursors[ViewCatalog], len(snap.Catalog))
	m.cursors[ViewCart] = clamp(m.cursors[ViewCart], len(snap.Cart))
	m.cursors[ViewOrders] = clamp(m.cursors[ViewOrders], len(snap.Orders))
	m.cursors[ViewCollections] = clamp(m.cursors[ViewCollections], len(snap.Collections))
	if m.openCollection != nil {
		m.openCollection = findCollection(snap.Collections, m.openCollection.ID)
	}
	if len(snap.Catalog) == 0 {
		m.itemDetail = false
	}
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashedAt = time.Now()
}

func (m Model) contentHeight() int {
	h := m.height - 3 // header, command bar, footer
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) modalWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.fitContent(m.renderContent()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// fitContent pads or cuts content to the content height so the footer
// stays on the last line.
func (m Model) fitContent(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	h := m.contentHeight()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCatalog:
		return m.renderCatalog()
	case ViewCart:
		return m.renderCart()
	case ViewOrders:
		return m.renderOrders()
	case ViewCollections:
		return m.renderCollections()
	case ViewAbout:
		return m.renderAbout()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// storeChangedMsg is sent by the store observer; the model re-reads the
// store rather than trusting the order goroutines deliver snapshots in.
type storeChangedMsg struct{}

type opResultMsg struct {
	action string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// runOp runs a store call that may reach the remote off the event loop.
func (m Model) runOp(done string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		if errors.Is(err, state.ErrUnauthorized) {
			err = errors.New(ownerRequired)
		}
		return opResultMsg{action: done, err: err}
	}
}

// Run starts the Bubble Tea program and returns when the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)

	if opts.Store != nil {
		// Observers run under store calls made from Update, so Send must
		// not block the caller.
		cancel := opts.Store.Subscribe(func(state.Snapshot) {
			go p.Send(storeChangedMsg{})
		})
		defer cancel()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
