// Package tui is the interactive rename screen: pattern and replacement
// inputs, a live preview table and the transform history.
package tui

import (
	"context"
	"fmt"

	"renamer/internal/engine"
	"renamer/internal/errors"
	"renamer/internal/log"
	"renamer/internal/preview"
	"renamer/internal/rename"
	"renamer/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type field int

const (
	patternField field = iota
	replacementField
)

// Model is the bubbletea model of the rename screen
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	keys   keyMap
	help   help.Model
	styles Styles
	status *statusBar
	log    *log.Logger

	// Transform inputs
	pattern         textinput.Model
	replacement     textinput.Model
	focus           field
	regex           bool
	caseInsensitive bool

	// Preview state
	table   viewport.Model
	set     preview.Set
	pending bool
	err     error

	// History panel
	showHistory   bool
	history       []types.HistoryEntry
	historyCursor int

	executing bool
	outcome   *rename.Outcome

	selections    <-chan []string
	width, height int
}

// Option configures a Model
type Option func(*Model)

// WithContext bounds background previews and renames to ctx
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithTheme selects a named colour theme
func WithTheme(name string) Option {
	return func(m *Model) {
		m.styles = NewStyles(name)
		m.status = newStatusBar(m.styles.Status)
	}
}

// WithToggles sets the initial regex and ignore-case toggles
func WithToggles(regex, caseInsensitive bool) Option {
	return func(m *Model) {
		m.regex = regex
		m.caseInsensitive = caseInsensitive
	}
}

// WithSelections makes the screen follow selections applied from ch,
// typically the channel returned by Engine.Subscribe
func WithSelections(ch <-chan []string) Option {
	return func(m *Model) { m.selections = ch }
}

// New creates the rename screen for eng
func New(eng *engine.Engine, opts ...Option) *Model {
	pattern := textinput.New()
	pattern.Placeholder = "text or regular expression"
	pattern.Prompt = ""
	pattern.Focus()

	replacement := textinput.New()
	replacement.Placeholder = "replacement ($1 for groups)"
	replacement.Prompt = ""

	styles := NewStyles("default")
	m := &Model{
		ctx:         context.Background(),
		engine:      eng,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      styles,
		status:      newStatusBar(styles.Status),
		log:         log.Component("tui"),
		pattern:     pattern,
		replacement: replacement,
		table:       viewport.New(80, 10),
		width:       80,
		height:      24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.requestPreview(), m.waitForSelection())
}

// Spec returns the transform currently described by the inputs
func (m *Model) Spec() types.TransformSpec {
	return types.TransformSpec{
		Pattern:         m.pattern.Value(),
		Replacement:     m.replacement.Value(),
		IsRegex:         m.regex,
		CaseInsensitive: m.caseInsensitive,
	}
}

// Outcome returns the result of the last rename, if any
func (m *Model) Outcome() (rename.Outcome, bool) {
	if m.outcome == nil {
		return rename.Outcome{}, false
	}
	return *m.outcome, true
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.showHistory {
			return m.handleHistoryKeys(msg)
		}
		return m.handleKeys(msg)
	case previewMsg:
		m.applyPreview(msg)
		return m, nil
	case executeMsg:
		return m, m.applyOutcome(msg)
	case selectionMsg:
		m.outcome = nil
		m.log.With(log.F("files", len(msg.paths))).Debug("selection received")
		return m, tea.Batch(m.requestPreview(), m.waitForSelection())
	case historyClearedMsg:
		if msg.err != nil {
			m.status.Stop(msg.err.Error(), m.styles.Error)
			return m, nil
		}
		m.history = nil
		m.historyCursor = 0
		m.status.Stop("history cleared", m.styles.Status)
		return m, nil
	}

	// spinner ticks and cursor blinks
	var cmds []tea.Cmd
	cmds = append(cmds, m.status.Update(msg))
	var cmd tea.Cmd
	m.pattern, cmd = m.pattern.Update(msg)
	cmds = append(cmds, cmd)
	m.replacement, cmd = m.replacement.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.ToggleRegex):
		m.regex = !m.regex
		return m, m.requestPreview()
	case key.Matches(msg, m.keys.ToggleCase):
		m.caseInsensitive = !m.caseInsensitive
		return m, m.requestPreview()
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return m, nil
	case key.Matches(msg, m.keys.ClearHistory):
		return m, m.clearHistory()
	case key.Matches(msg, m.keys.Apply):
		return m, m.execute()
	case key.Matches(msg, m.keys.ScrollUp):
		m.table.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.table.HalfViewDown()
		return m, nil
	}

	before := m.Spec()
	var cmd tea.Cmd
	if m.focus == patternField {
		m.pattern, cmd = m.pattern.Update(msg)
	} else {
		m.replacement, cmd = m.replacement.Update(msg)
	}
	if m.Spec() != before {
		return m, tea.Batch(cmd, m.requestPreview())
	}
	return m, cmd
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.showHistory = false
	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}
	case key.Matches(msg, m.keys.ClearHistory):
		return m, m.clearHistory()
	case key.Matches(msg, m.keys.UseEntry):
		if len(m.history) == 0 {
			return m, nil
		}
		m.load(m.history[m.historyCursor].Spec())
		m.showHistory = false
		return m, m.requestPreview()
	}
	return m, nil
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == patternField {
		m.focus = replacementField
		m.pattern.Blur()
		return m.replacement.Focus()
	}
	m.focus = patternField
	m.replacement.Blur()
	return m.pattern.Focus()
}

// load fills the inputs and toggles from spec
func (m *Model) load(spec types.TransformSpec) {
	m.pattern.SetValue(spec.Pattern)
	m.replacement.SetValue(spec.Replacement)
	m.regex = spec.IsRegex
	m.caseInsensitive = spec.CaseInsensitive
}

func (m *Model) openHistory() {
	m.history = m.engine.History()
	m.historyCursor = 0
	m.showHistory = true
}

func (m *Model) clearHistory() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return historyClearedMsg{err: eng.ClearHistory()}
	}
}

// requestPreview starts a background preview of the current inputs. A
// preview still running is cancelled by the engine.
func (m *Model) requestPreview() tea.Cmd {
	spec := m.Spec()
	ch := m.engine.PreviewAsync(m.ctx, spec)
	m.pending = true
	return tea.Batch(m.status.Start("previewing"), func() tea.Msg {
		return previewMsg{spec: spec, result: <-ch}
	})
}

func (m *Model) applyPreview(msg previewMsg) {
	err := msg.result.Err
	if errors.Is(err, engine.ErrSuperseded) || errors.Is(err, context.Canceled) || msg.spec != m.Spec() {
		return
	}

	m.pending = false
	m.set = msg.result.Set
	m.err = err
	switch {
	case err != nil:
		m.status.Stop(err.Error(), m.styles.Error)
	default:
		m.status.Stop(fmt.Sprintf("%d of %d files will be renamed", m.set.ChangedCount(), m.set.Len()), m.styles.Status)
	}
	m.table.SetContent(renderPreview(m.set, m.styles))
}

func (m *Model) execute() tea.Cmd {
	if m.executing {
		return nil
	}
	if m.pending {
		m.status.SetText("preview still running")
		return nil
	}
	m.executing = true
	m.outcome = nil
	ctx, eng := m.ctx, m.engine
	return tea.Batch(m.status.Start("renaming"), func() tea.Msg {
		outcome, err := eng.Execute(ctx)
		return executeMsg{outcome: outcome, err: err}
	})
}

func (m *Model) applyOutcome(msg executeMsg) tea.Cmd {
	m.executing = false
	switch {
	case errors.Is(msg.err, engine.ErrNothingToDo):
		m.status.Stop("nothing to rename", m.styles.Status)
		return nil
	case errors.Is(msg.err, engine.ErrNoPreview):
		m.status.Stop("no preview to apply", m.styles.Error)
		return nil
	case errors.Is(msg.err, engine.ErrExecuteInProgress):
		m.status.Stop("a rename is already running", m.styles.Error)
		return nil
	case msg.err != nil:
		m.status.Stop(msg.err.Error(), m.styles.Error)
		return nil
	}

	m.outcome = &msg.outcome
	m.log.With(
		log.F("renamed", msg.outcome.SuccessCount),
		log.F("failed", msg.outcome.FailureCount),
	).Debug("rename finished")
	// the selection now holds the new names
	return m.requestPreview()
}

func (m *Model) waitForSelection() tea.Cmd {
	if m.selections == nil {
		return nil
	}
	ch := m.selections
	return func() tea.Msg {
		paths, ok := <-ch
		if !ok {
			return nil
		}
		return selectionMsg{paths: paths}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	inputWidth := width - 18
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.pattern.Width = inputWidth
	m.replacement.Width = inputWidth

	m.table.Width = width - 6
	// title, inputs, toggles, panel border, status, outcome and help
	tableHeight := height - 14
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.Height = tableHeight
}
