// Package lookup provides the record lookup views for the TUI: a searchable
// selector fed by a debounced backend search, with a detail pane for the
// chosen record.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/components/status"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/messages"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

// fieldTop is the line the selector starts on: title, then a blank line.
const fieldTop = 2

// View represents a lookup view for one record type.
type View[T any] struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	title  string
	field  *Field[T]
	detail DetailFunc[T]

	width  int
	height int
	ready  bool
}

// NewView creates a lookup view.
func NewView[T any](
	s *styles.Styles,
	km *keymap.KeyMap,
	title string,
	strategy selector.Strategy[T],
	search SearchFunc[T],
	detail DetailFunc[T],
	debounce time.Duration,
) *View[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View[T]{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km),
		title:     title,
		field:     NewField(strategy, search, debounce, s, km),
		detail:    detail,
		width:     80,
		height:    24,
	}
	v.field.SetOrigin(0, fieldTop)
	v.syncStatus()
	return v
}

// WithContext sets the parent context of backend searches.
func (v *View[T]) WithContext(ctx context.Context) *View[T] {
	v.field.WithContext(ctx)
	return v
}

// Init focuses the selector.
func (v *View[T]) Init() tea.Cmd {
	cmd := v.field.Focus()
	v.syncStatus()
	return cmd
}

// Update handles messages for the lookup view.
func (v *View[T]) Update(msg tea.Msg) (*View[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if !v.field.Focused() {
			return v.handleUnfocusedKey(msg)
		}
	}

	_, cmd := v.field.Update(msg)
	v.syncStatus()
	return v, cmd
}

// handleUnfocusedKey handles keys while the selector is blurred: esc leaves
// the view and the focus keys return to the selector.
func (v *View[T]) handleUnfocusedKey(msg tea.KeyMsg) (*View[T], tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		v.field.Stop()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keymap.Focus), key.Matches(msg, v.keymap.Select):
		cmd := v.field.Focus()
		v.syncStatus()
		return v, cmd
	case key.Matches(msg, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}
	return v, nil
}

// syncStatus derives the status bar from the field.
func (v *View[T]) syncStatus() {
	switch {
	case v.field.Loading():
		v.statusbar.SetState(status.StateSearching)
	case v.field.Err() != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(DescribeError(v.field.Err()))
	case v.field.Open():
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(len(v.field.Matches()))
	case v.field.SelectedText() != "":
		v.statusbar.SetState(status.StateSelected)
		v.statusbar.SetMessage(v.field.SelectedText())
	default:
		v.statusbar.Clear()
	}

	if v.field.Focused() {
		v.statusbar.SetHints(v.keymap.SelectorHelp())
	} else {
		v.statusbar.SetHints([]key.Binding{v.keymap.Focus, v.keymap.Back, v.keymap.Help})
	}
}

// View renders the lookup view.
func (v *View[T]) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render(v.title), "")
	sections = append(sections, v.field.View(), "")

	if rec, ok := v.field.Selected(); ok && v.detail != nil {
		sections = append(sections, v.renderDetail(rec), "")
	} else if !v.field.Open() {
		hint := v.field.dropdown.Strategy().Config.HintMessage()
		sections = append(sections, v.styles.Muted.Render(hint), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View[T]) renderDetail(rec T) string {
	rows := v.detail(rec)

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len(r.Label))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		value := v.styles.Normal.Render(r.Value)
		if r.Warn {
			value = v.styles.Warning.Render(r.Value)
		}
		label := v.styles.Label.Render(fmt.Sprintf("%-*s", labelWidth, r.Label))
		lines = append(lines, label+"  "+value)
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View[T]) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.field.SetWidth(min(width, 100))
	v.statusbar.SetWidth(width)
}

// SetMinQueryLength changes how many characters trigger a search.
func (v *View[T]) SetMinQueryLength(n int) {
	v.field.SetMinQueryLength(n)
}

// SetDebounce changes the quiet window before a search runs.
func (v *View[T]) SetDebounce(window time.Duration) {
	v.field.SetDebounce(window)
}

// SetUser sets the signed-in user shown in the status bar.
func (v *View[T]) SetUser(name string) {
	v.statusbar.SetUser(name)
}

// Reset empties the selector and cancels any search.
func (v *View[T]) Reset() {
	v.field.Reset()
	v.syncStatus()
}

// Field returns the view's selector field.
func (v *View[T]) Field() *Field[T] {
	return v.field
}

// Status returns the view's status bar.
func (v *View[T]) Status() *status.Bar {
	return v.statusbar
}

// Title returns the view title.
func (v *View[T]) Title() string {
	return v.title
}
