// Package dropdown provides the searchable selector component for the TUI.
//
// The component owns no selection logic of its own. Every key press or
// click is translated into a selector event and run through
// selector.Reduce; the resulting effects are applied to the text input
// and handed back to the host.
package dropdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

const (
	// DefaultMaxRows is how many candidates the dropdown shows at once.
	DefaultMaxRows = 5

	// DefaultWidth is the component width before the host sizes it.
	DefaultWidth = 60

	// Line offsets inside the rendered component.
	labelLine    = 0
	inputLine    = 1
	firstRowLine = 3 // label, input, top border
)

// Model is a searchable selector bound to one record type.
type Model[T any] struct {
	strategy selector.Strategy[T]
	props    selector.Props[T]
	state    selector.State[T]

	input   textinput.Model
	spinner spinner.Model
	styles  *styles.Styles
	keymap  *keymap.KeyMap

	loading bool

	// cursor is the match enter picks; offset is the first visible match.
	cursor  int
	offset  int
	maxRows int

	width int
	x, y  int
}

// New creates a selector for strategy.
func New[T any](strategy selector.Strategy[T], s *styles.Styles, km *keymap.KeyMap) *Model[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Placeholder = strategy.Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 128

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Subtitle

	m := &Model[T]{
		strategy: strategy,
		props:    strategy.Props(nil),
		input:    ti,
		spinner:  sp,
		styles:   s,
		keymap:   km,
		maxRows:  DefaultMaxRows,
	}
	m.SetWidth(DefaultWidth)
	return m
}

// Init implements the component lifecycle.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles a message and returns the effects the host must act on
// (query changes, selections, clears) plus any follow-up command.
func (m *Model[T]) Update(msg tea.Msg) ([]selector.Effect[T], tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return nil, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return nil, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if !m.state.Focused {
			return nil, nil
		}
		return m.handleKey(msg)
	}

	if !m.state.Focused {
		return nil, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return nil, cmd
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) ([]selector.Effect[T], tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
		return nil, nil

	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
		return nil, nil

	case key.Matches(msg, m.keymap.Select):
		if m.state.Open && m.cursor > 0 {
			return m.dispatch(selector.Select{Index: m.cursor}), nil
		}
		return m.dispatch(selector.Enter{}), nil

	case key.Matches(msg, m.keymap.Clear):
		return m.dispatch(selector.Clear{}), nil

	case key.Matches(msg, m.keymap.Dismiss):
		return m.dispatch(selector.Escape{}), nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		return m.dispatch(selector.QueryChanged{Query: value}), cmd
	}
	return nil, cmd
}

// handleMouse maps a left click onto Select, Focus or ClickOutside.
func (m *Model[T]) handleMouse(msg tea.MouseMsg) []selector.Effect[T] {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	row, inside := m.hit(msg.X, msg.Y)
	if !inside {
		if m.state.Open {
			return m.dispatch(selector.ClickOutside{})
		}
		return nil
	}
	if row >= 0 {
		return m.dispatch(selector.Select{Index: row})
	}
	if m.props.Disabled {
		return nil
	}
	m.Focus()
	return nil
}

// hit reports whether the screen cell (x, y) is inside the component and,
// when it lands on a candidate, which match index it belongs to (else -1).
func (m *Model[T]) hit(x, y int) (int, bool) {
	relX, relY := x-m.x, y-m.y
	if relX < 0 || relX >= m.width || relY < 0 || relY >= m.Height() {
		return -1, false
	}
	if !m.state.Open || relY < firstRowLine {
		return -1, true
	}

	line := firstRowLine
	for i := m.offset; i < m.visibleEnd(); i++ {
		n := len(m.strategy.CandidateLines(m.state.Matches[i]))
		if relY < line+n {
			return i, true
		}
		line += n
	}
	return -1, true
}

// dispatch runs ev through the reducer and applies focus effects locally.
func (m *Model[T]) dispatch(ev selector.Event) []selector.Effect[T] {
	next, effects := selector.Reduce(m.props, m.state, ev)
	m.state = next

	for _, e := range effects {
		switch e.Kind {
		case selector.EffectFocus:
			m.input.Focus()
		case selector.EffectBlur:
			m.input.Blur()
		case selector.EffectChange, selector.EffectSelect, selector.EffectClear:
		}
	}
	if !m.state.Focused {
		m.input.Blur()
	}

	if m.input.Value() != m.state.Query {
		m.input.SetValue(m.state.Query)
		m.input.CursorEnd()
	}

	if _, ok := ev.(selector.QueryChanged); ok {
		m.cursor, m.offset = 0, 0
	}
	m.clampCursor()
	return effects
}

func (m *Model[T]) moveCursor(delta int) {
	if !m.state.Open || len(m.state.Matches) == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
}

func (m *Model[T]) clampCursor() {
	n := len(m.state.Matches)
	switch {
	case n == 0:
		m.cursor, m.offset = 0, 0
		return
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxRows {
		m.offset = m.cursor - m.maxRows + 1
	}
	if m.offset > n-1 {
		m.offset = max(n-m.maxRows, 0)
	}
}

func (m *Model[T]) visibleEnd() int {
	return min(m.offset+m.maxRows, len(m.state.Matches))
}

// View renders the label, the input and, when open, the dropdown.
func (m *Model[T]) View() string {
	lines := make([]string, 0, 3)

	labelStyle := m.styles.Label
	if m.state.Focused {
		labelStyle = m.styles.FocusedLabel
	}
	label := labelStyle.Render(m.strategy.Label)
	if m.loading {
		label += " " + m.spinner.View() + m.styles.Muted.Render(" searching…")
	}
	lines = append(lines, label, m.input.View())

	if m.state.Open {
		lines = append(lines, m.renderDropdown())
	}
	return strings.Join(lines, "\n")
}

func (m *Model[T]) renderDropdown() string {
	inner := m.innerWidth()

	var rows []string
	if len(m.state.Matches) == 0 {
		msg := m.strategy.Config.NoResults()
		if m.loading {
			msg = "Searching…"
		}
		rows = append(rows, m.styles.Muted.Render(ansi.Truncate(msg, inner, "…")))
	}

	for i := m.offset; i < m.visibleEnd(); i++ {
		for j, line := range m.strategy.CandidateLines(m.state.Matches[i]) {
			text := ansi.Truncate(line, inner, "…")
			switch {
			case i == m.cursor:
				rows = append(rows, m.styles.ActiveCandidate.Width(inner).Render(text))
			case j == 0:
				rows = append(rows, m.styles.Candidate.Render(text))
			default:
				rows = append(rows, m.styles.CandidateDetail.Render(text))
			}
		}
	}

	if hidden := len(m.state.Matches) - m.visibleEnd(); hidden > 0 {
		rows = append(rows, m.styles.Muted.Render(fmt.Sprintf("↓ %d more", hidden)))
	}

	return m.styles.Dropdown.Width(inner).Render(strings.Join(rows, "\n"))
}

func (m *Model[T]) innerWidth() int {
	return max(m.width-2, 10)
}

// Focus gives the input focus. Disabled selectors ignore it.
func (m *Model[T]) Focus() tea.Cmd {
	m.dispatch(selector.Focus{})
	if !m.state.Focused {
		return nil
	}
	return m.input.Focus()
}

// Blur closes the dropdown and releases focus.
func (m *Model[T]) Blur() {
	m.dispatch(selector.Blur{})
}

// SetRecords replaces the candidate records and refilters.
func (m *Model[T]) SetRecords(records []T) {
	m.props.Records = records
	m.dispatch(selector.RecordsChanged{})
}

// SetLoading toggles the busy indicator. Turning it on returns the first
// spinner tick.
func (m *Model[T]) SetLoading(loading bool) tea.Cmd {
	wasLoading := m.loading
	m.loading = loading
	if loading && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

// SetDisabled enables or disables the selector. Disabling also blurs it.
func (m *Model[T]) SetDisabled(disabled bool) {
	m.props.Disabled = disabled
	if disabled {
		m.dispatch(selector.Blur{})
	}
}

// SetMinQueryLength changes how many characters open the dropdown.
func (m *Model[T]) SetMinQueryLength(n int) {
	m.strategy = m.strategy.WithMinQueryLength(n)
	m.props.Config = m.strategy.Config
	m.dispatch(selector.RecordsChanged{})
}

// Reset returns the selector to its initial empty state, keeping records.
func (m *Model[T]) Reset() {
	m.state = selector.State[T]{}
	m.input.SetValue("")
	m.input.Blur()
	m.loading = false
	m.cursor, m.offset = 0, 0
}

// SetWidth sets the total component width including the dropdown border.
func (m *Model[T]) SetWidth(width int) {
	m.width = width
	m.input.Width = max(width-len(m.input.Prompt)-1, 10)
}

// SetOrigin records where the component is drawn, for mouse hit testing.
func (m *Model[T]) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// Height returns the number of terminal lines the component occupies.
func (m *Model[T]) Height() int {
	return strings.Count(m.View(), "\n") + 1
}

// Query returns the current query text.
func (m *Model[T]) Query() string {
	return m.state.Query
}

// Open reports whether the dropdown is showing.
func (m *Model[T]) Open() bool {
	return m.state.Open
}

// Focused reports whether the selector has focus.
func (m *Model[T]) Focused() bool {
	return m.state.Focused
}

// Matches returns the current filtered candidates.
func (m *Model[T]) Matches() []T {
	return m.state.Matches
}

// Loading reports whether the busy indicator is on.
func (m *Model[T]) Loading() bool {
	return m.loading
}

// Disabled reports whether the selector ignores input.
func (m *Model[T]) Disabled() bool {
	return m.props.Disabled
}

// Strategy returns the selector's strategy.
func (m *Model[T]) Strategy() selector.Strategy[T] {
	return m.strategy
}
