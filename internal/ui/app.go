package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/jot/internal/prefs"
	"github.com/five82/jot/internal/session"
	"github.com/five82/jot/internal/todoapi"
)

// mode is what keystrokes currently drive.
type mode int

const (
	modeBrowse mode = iota
	modeCompose
	modeEdit
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Session    *session.Session
	ServiceURL string
	LogFile    string
	ThemeName  string
	Filter     string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	session    *session.Session
	serviceURL string
	logFile    string
	prefsPath  string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	mode     mode
	showHelp bool

	// Inputs
	compose textinput.Model
	edit    textinput.Model

	// Data state
	snapshot session.State
	filter   string
	selected int
	pending  int
	status   string

	// Diagnostics overlay
	showDiagnostics bool
	diagnostics     []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	compose := textinput.New()
	compose.Placeholder = "What needs doing?"
	compose.Prompt = "+ "
	compose.CharLimit = 500

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 500

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:        ctx,
		session:    opts.Session,
		serviceURL: opts.ServiceURL,
		logFile:    opts.LogFile,
		prefsPath:  opts.PrefsPath,
		theme:      GetTheme(opts.ThemeName),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		compose:    compose,
		edit:       edit,
		filter:     normalizeFilter(opts.Filter),
		pending:    1,
	}
	m.spinner.Style = m.theme.Styles().Accent
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		startCmd(m.ctx, m.session),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.compose.Width = max(msg.Width-6, 10)
		m.edit.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.finish(session.State(msg))
		return m, nil

	case submittedMsg:
		m.finish(msg.state)
		// Text typed while the create was in flight is kept.
		if msg.cleared && m.compose.Value() == msg.value {
			m.compose.Reset()
		}
		return m, nil

	case confirmedMsg:
		m.finish(msg.state)
		if errors.Is(msg.err, session.ErrEmptyDraft) {
			m.status = "Cannot save an empty todo"
		}
		return m, nil

	case diagnosticsMsg:
		if msg.err != nil {
			m.diagnostics = []string{fmt.Sprintf("read %s: %v", m.logFile, msg.err)}
		} else {
			m.diagnostics = msg.lines
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// finish applies the result of a session operation.
func (m *Model) finish(state session.State) {
	if m.pending > 0 {
		m.pending--
	}
	m.apply(state)
}

func (m *Model) apply(state session.State) {
	m.snapshot = state
	if m.mode == modeEdit && !state.Editing {
		m.mode = modeBrowse
		m.edit.Blur()
	}
	m.clampSelection()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.status = ""

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeCompose:
		return m.handleComposeKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDiagnostics {
		switch {
		case key.Matches(msg, m.keys.Diagnostics), key.Matches(msg, m.keys.Cancel):
			m.showDiagnostics = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	items := m.visibleItems()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().Accent
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = nextFilter(m.filter)
		m.clampSelection()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = true
		return m, readDiagnosticsCmd(m.logFile)

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(items)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(items)-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Compose):
		m.mode = modeCompose
		cmd := m.compose.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.DismissError):
		m.session.DismissError()
		m.apply(m.session.Snapshot())
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(refreshCmd(m.ctx, m.session))
	}

	todo, ok := m.selectedTodo()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.session.BeginEdit(todo)
		m.apply(m.session.Snapshot())
		m.mode = modeEdit
		m.edit.SetValue(todo.Body)
		m.edit.CursorEnd()
		cmd := m.edit.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(toggleCmd(m.ctx, m.session, todo))

	case key.Matches(msg, m.keys.Delete):
		return m.dispatch(deleteCmd(m.ctx, m.session, todo))
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.compose.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.dispatch(submitCmd(m.ctx, m.session, m.compose.Value()))
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.session.CancelEdit()
		m.apply(m.session.Snapshot())
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		todo, ok := m.snapshot.Item(m.snapshot.EditingID)
		if !ok {
			m.status = "This todo no longer exists; esc to stop editing"
			return m, nil
		}
		return m.dispatch(confirmCmd(m.ctx, m.session, todo))
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.session.SetDraft(m.edit.Value())
	m.snapshot.Draft = m.edit.Value()
	return m, cmd
}

// updateInputs forwards non-key messages, such as cursor blinks, to the
// focused input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeCompose:
		m.compose, cmd = m.compose.Update(msg)
	case modeEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

// dispatch runs a session operation and starts the spinner when idle.
func (m Model) dispatch(op tea.Cmd) (tea.Model, tea.Cmd) {
	m.pending++
	if m.pending == 1 {
		return m, tea.Batch(op, m.spinner.Tick)
	}
	return m, op
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Filter: m.filter}); err != nil {
		m.status = fmt.Sprintf("Could not save preferences: %v", err)
	}
}

func (m Model) visibleItems() []todoapi.Todo {
	if m.filter == prefs.FilterAll {
		return m.snapshot.Items
	}
	wantDone := m.filter == prefs.FilterDone
	var items []todoapi.Todo
	for _, todo := range m.snapshot.Items {
		if todo.Completed == wantDone {
			items = append(items, todo)
		}
	}
	return items
}

func (m Model) selectedTodo() (todoapi.Todo, bool) {
	items := m.visibleItems()
	if m.selected < 0 || m.selected >= len(items) {
		return todoapi.Todo{}, false
	}
	return items[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.visibleItems())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func normalizeFilter(filter string) string {
	switch filter {
	case prefs.FilterOpen, prefs.FilterDone:
		return filter
	default:
		return prefs.FilterAll
	}
}

func nextFilter(filter string) string {
	switch filter {
	case prefs.FilterAll:
		return prefs.FilterOpen
	case prefs.FilterOpen:
		return prefs.FilterDone
	default:
		return prefs.FilterAll
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("ui requires a session")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
