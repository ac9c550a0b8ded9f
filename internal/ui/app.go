package ui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/listdetail"
	"github.com/clientdesk/clientdesk/internal/prefs"
)

// ClientState is the snapshot the UI renders.
type ClientState = listdetail.State[clients.Summary, clients.Record]

// Controller is the list-detail context the UI drives. Every action method
// may block on the network and is only called from tea.Cmds.
type Controller interface {
	Snapshot() ClientState
	Subscribe(fn func(ClientState)) (unsubscribe func())

	SetViewportWidth(width int)
	NextPage()
	PrevPage()
	SetPerPage(perPage int)
	SetSort(field string, dir listdetail.SortDirection)
	SetFilter(key, value string)
	SetSearchQuery(text string)
	ClearSearch()
	FlushSearch()
	RefreshList()
	ReloadList()

	SelectItem(id listdetail.EntityID)
	RetryDetail()
	CloseDetail()
	ToggleSelection(id listdetail.EntityID)
	SelectAll()
	ClearSelection()
}

// pane identifies the focused half of the split view.
type pane int

const (
	paneList pane = iota
	paneDetail
)

// Options configures the UI.
type Options struct {
	Controller Controller
	Prefs      prefs.Prefs
	PrefsPath  string
	Logger     *zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctrl      Controller
	feed      *stateFeed
	prefs     prefs.Prefs
	prefsPath string
	log       zerolog.Logger

	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool
	focus  pane

	state ClientState
	now   time.Time

	cursor    int
	activeTab int
	lastTabID listdetail.EntityID

	searching bool
	search    textinput.Model
	spinner   spinner.Model
	detail    viewport.Model
	showHelp  bool
}

// New creates a Bubble Tea model subscribed to ctrl.
func New(opts Options) Model {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "name, company or email"
	input.CharLimit = 120

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	m := Model{
		ctrl:      opts.Controller,
		feed:      newStateFeed(),
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		log:       logger,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    input,
		spinner:   spin,
		detail:    viewport.New(0, 0),
		now:       time.Now(),
	}
	m.state = m.ctrl.Snapshot()
	m.search.SetValue(m.state.SearchText)
	m.feed.unsubscribe = m.ctrl.Subscribe(m.feed.push)
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.feed.wait(),
		m.spinner.Tick,
		tickCmd(DefaultUIInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-20, 10)
		// Resizing touches only responsive state; no I/O happens here.
		m.ctrl.SetViewportWidth(viewportPixels(msg.Width))
		m.syncDetail()
		return m, nil

	case stateMsg:
		m.applyState(ClientState(msg))
		return m, m.feed.wait()

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(DefaultUIInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
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

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// applyState installs a newer snapshot. Stale versions are dropped.
func (m *Model) applyState(s ClientState) {
	if s.Version < m.state.Version {
		return
	}
	var keepID listdetail.EntityID
	if items := m.state.Items(); m.cursor < len(items) {
		keepID = items[m.cursor].EntityID()
	}
	m.state = s

	// Keep the cursor on the same client across page refreshes.
	items := s.Items()
	if idx := s.IndexOf(keepID); keepID != "" && idx >= 0 {
		m.cursor = idx
	} else if m.cursor >= len(items) {
		m.cursor = max(len(items)-1, 0)
	}

	if s.SelectedItemID == "" && m.focus == paneDetail {
		m.focus = paneList
	}
	if s.SelectedItemID != m.lastTabID {
		m.activeTab = 0
		m.lastTabID = s.SelectedItemID
		m.detail.GotoTop()
	}
	if !m.searching {
		m.search.SetValue(s.SearchText)
	}
	m.syncDetail()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
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
		m.applyTheme()
		m.syncDetail()
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.state.SelectedItemID != "" {
			m.focus = paneList
			return m, m.run(m.ctrl.CloseDetail)
		}
		if m.state.Params.Query != "" {
			return m, m.run(m.ctrl.ClearSearch)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.focus = paneList
		m.search.SetValue(m.state.SearchText)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.run(m.ctrl.RefreshList)

	case key.Matches(msg, m.keys.Reload):
		return m, m.run(m.ctrl.ReloadList)

	case key.Matches(msg, m.keys.Retry):
		if m.state.DetailError != "" {
			return m, m.run(m.ctrl.RetryDetail)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m, m.run(m.ctrl.NextPage)

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.run(m.ctrl.PrevPage)

	case key.Matches(msg, m.keys.MorePerPage):
		n := stepPerPage(m.state.Params.PerPage, 1)
		return m, m.run(func() { m.ctrl.SetPerPage(n) })

	case key.Matches(msg, m.keys.LessPerPage):
		n := stepPerPage(m.state.Params.PerPage, -1)
		return m, m.run(func() { m.ctrl.SetPerPage(n) })

	case key.Matches(msg, m.keys.CycleFilter):
		next := nextStatusFilter(m.state.Params.Filters["status"])
		return m, m.run(func() { m.ctrl.SetFilter("status", next) })

	case key.Matches(msg, m.keys.CycleSort):
		field := nextSortField(m.state.Params.SortField)
		dir := m.state.Params.SortDirection
		return m, m.run(func() { m.ctrl.SetSort(field, dir) })

	case key.Matches(msg, m.keys.FlipSort):
		field := m.state.Params.SortField
		if field == "" {
			field = clients.SortFields[0]
		}
		dir := m.state.Params.SortDirection.Flip()
		return m, m.run(func() { m.ctrl.SetSort(field, dir) })
	}

	if m.focus == paneDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keys while the list pane has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.state.Items()
	if len(items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(items) - 1
	case key.Matches(msg, m.keys.Open):
		id := items[m.cursor].EntityID()
		if m.state.Responsive.Mode != listdetail.LayoutDesktop {
			m.focus = paneDetail
		}
		return m, m.run(func() { m.ctrl.SelectItem(id) })
	case key.Matches(msg, m.keys.Toggle):
		id := items[m.cursor].EntityID()
		return m, m.run(func() { m.ctrl.ToggleSelection(id) })
	case key.Matches(msg, m.keys.SelectAll):
		return m, m.run(m.ctrl.SelectAll)
	case key.Matches(msg, m.keys.ClearSelect):
		return m, m.run(m.ctrl.ClearSelection)
	}
	return m, nil
}

// handleDetailKey processes keys while the detail pane has focus.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tabs := 0
	if m.state.HasDetail() {
		tabs = len(m.state.Detail.Tabs)
	}
	switch {
	case key.Matches(msg, m.keys.NextTab):
		if tabs > 0 {
			m.activeTab = (m.activeTab + 1) % tabs
			m.detail.GotoTop()
			m.syncDetail()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		if tabs > 0 {
			m.activeTab = (m.activeTab + tabs - 1) % tabs
			m.detail.GotoTop()
			m.syncDetail()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// handleSearchKey feeds keystrokes to the search box. Every edit is handed to
// the controller, which debounces before loading.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, m.run(m.ctrl.FlushSearch)
	case key.Matches(msg, m.keys.Back):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, m.run(m.ctrl.ClearSearch)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if text := m.search.Value(); text != before {
		// SetSearchQuery only arms a timer, so it is safe on the update loop.
		m.ctrl.SetSearchQuery(text)
	}
	return m, cmd
}

// toggleFocus switches panes when both are visible.
func (m *Model) toggleFocus() {
	if m.focus == paneDetail {
		m.focus = paneList
		return
	}
	if m.state.SelectedItemID != "" || m.state.Responsive.Mode == listdetail.LayoutDesktop {
		m.focus = paneDetail
	}
}

// run wraps a blocking controller call in a command. Results arrive through
// the subscription, so the command itself produces no message.
func (m Model) run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m Model) savePrefs() tea.Cmd {
	p, path, log := m.prefs, m.prefsPath, m.log
	return func() tea.Msg {
		if err := prefs.Save(path, p); err != nil {
			log.Warn().Err(err).Msg("save prefs")
		}
		return nil
	}
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.Ellipsis = styles.FaintText
	m.help.Styles.FullKey = m.theme.Styles().WarningText
	m.help.Styles.FullDesc = m.theme.Styles().Text
	m.help.Styles.FullSeparator = m.theme.Styles().FaintText
	m.spinner.Style = styles.WarningText
}

// Prefs returns the preferences to persist, including the current list
// settings.
func (m Model) Prefs() prefs.Prefs {
	return m.prefs.Remember(m.state.Params)
}

// Close detaches the model from its controller.
func (m Model) Close() {
	m.feed.close()
}

func nextStatusFilter(current string) string {
	idx := slices.Index(clients.StatusFilters, current)
	return clients.StatusFilters[(idx+1)%len(clients.StatusFilters)]
}

func nextSortField(current string) string {
	idx := slices.Index(clients.SortFields, current)
	return clients.SortFields[(idx+1)%len(clients.SortFields)]
}

// Messages

type tickMsg time.Time

type stateMsg ClientState

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stateFeed turns controller notifications into Bubble Tea messages. It keeps
// only the latest snapshot; intermediate ones are superseded anyway.
type stateFeed struct {
	mu          sync.Mutex
	ch          chan ClientState
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

func newStateFeed() *stateFeed {
	return &stateFeed{
		ch:   make(chan ClientState, 1),
		done: make(chan struct{}),
	}
}

func (f *stateFeed) push(s ClientState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.ch:
	default:
	}
	f.ch <- s
}

func (f *stateFeed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.ch:
			return stateMsg(s)
		case <-f.done:
			return nil
		}
	}
}

func (f *stateFeed) close() {
	f.closeOnce.Do(func() {
		if f.unsubscribe != nil {
			f.unsubscribe()
		}
		close(f.done)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. It returns the preferences to persist.
func Run(ctx context.Context, opts Options) (prefs.Prefs, error) {
	if opts.Controller == nil {
		return opts.Prefs, errors.New("ui requires a controller")
	}
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if fm, ok := final.(Model); ok {
		return fm.Prefs(), err
	}
	return m.Prefs(), err
}
