package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/components/dropdown"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/keymap"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui/styles"
	"github.com/goodeyes/frontdesk/internal/core/selector"
	"github.com/goodeyes/frontdesk/internal/core/services"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// SearchFunc fetches candidate records for query from the backend.
type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// ownedMsg is implemented by messages addressed to one field.
type ownedMsg interface {
	ownedBy() any
}

// debounceMsg fires when the query has been quiet for the debounce window.
type debounceMsg struct {
	owner any
	ctx   context.Context
	token uint64
	query string
}

func (m debounceMsg) ownedBy() any { return m.owner }

// resultsMsg carries a finished backend search.
type resultsMsg[T any] struct {
	owner   any
	token   uint64
	query   string
	records []T
	err     error
}

func (m resultsMsg[T]) ownedBy() any { return m.owner }

// Field is a selector whose candidates come from a debounced backend search.
// Typing updates the dropdown synchronously; the search result replaces the
// candidate records when it arrives, unless a newer query superseded it.
type Field[T any] struct {
	dropdown  *dropdown.Model[T]
	debouncer *services.Debouncer
	search    SearchFunc[T]
	ctx       context.Context

	selected *T
	err      error
}

// NewField creates a field for strategy backed by search.
func NewField[T any](
	strategy selector.Strategy[T],
	search SearchFunc[T],
	debounce time.Duration,
	s *styles.Styles,
	km *keymap.KeyMap,
) *Field[T] {
	return &Field[T]{
		dropdown:  dropdown.New(strategy, s, km),
		debouncer: services.NewDebouncer(debounce),
		search:    search,
		ctx:       context.Background(),
	}
}

// WithContext sets the parent context of backend searches.
func (f *Field[T]) WithContext(ctx context.Context) *Field[T] {
	f.ctx = ctx
	return f
}

// Update handles a message and returns the selector effects it produced.
// Debounce and result messages addressed to other fields are ignored.
func (f *Field[T]) Update(msg tea.Msg) ([]selector.Effect[T], tea.Cmd) {
	if owned, ok := msg.(ownedMsg); ok && owned.ownedBy() != any(f) {
		return nil, nil
	}

	switch msg := msg.(type) {
	case debounceMsg:
		return nil, f.runSearch(msg)
	case resultsMsg[T]:
		f.applyResults(msg)
		return nil, nil
	}

	effects, cmd := f.dropdown.Update(msg)
	if len(effects) == 0 {
		return nil, cmd
	}
	return effects, tea.Batch(cmd, f.handleEffects(effects))
}

func (f *Field[T]) handleEffects(effects []selector.Effect[T]) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e.Kind {
		case selector.EffectChange:
			if f.selected != nil && e.Query != f.dropdown.Strategy().SelectedText(*f.selected) {
				f.selected = nil
			}
			cmds = append(cmds, f.schedule(e.Query))
		case selector.EffectSelect:
			rec := e.Record
			f.selected = &rec
		case selector.EffectClear:
			f.selected = nil
			f.err = nil
		case selector.EffectFocus, selector.EffectBlur:
		}
	}
	return tea.Batch(cmds...)
}

// schedule starts the debounce window for query, replacing any pending or
// running search. Queries below the minimum length only cancel.
func (f *Field[T]) schedule(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if !f.dropdown.Strategy().Config.Searchable(query) {
		f.debouncer.Stop()
		f.dropdown.SetLoading(false)
		return nil
	}

	ctx, token := f.debouncer.Begin(f.ctx)
	return tea.Tick(f.debouncer.Window(), func(time.Time) tea.Msg {
		return debounceMsg{owner: f, ctx: ctx, token: token, query: query}
	})
}

func (f *Field[T]) runSearch(msg debounceMsg) tea.Cmd {
	if !f.debouncer.Current(msg.token) {
		return nil
	}

	search := f.search
	fetch := func() tea.Msg {
		if search == nil {
			return resultsMsg[T]{owner: msg.owner, token: msg.token, query: msg.query, err: ErrNoSearchFunc}
		}
		records, err := search(msg.ctx, msg.query)
		return resultsMsg[T]{owner: msg.owner, token: msg.token, query: msg.query, records: records, err: err}
	}
	return tea.Batch(f.dropdown.SetLoading(true), fetch)
}

func (f *Field[T]) applyResults(msg resultsMsg[T]) {
	if !f.debouncer.Current(msg.token) {
		logger.Debug("Dropping stale results for %q", msg.query)
		return
	}
	f.dropdown.SetLoading(false)

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		logger.Warn("Search for %q failed: %v", msg.query, msg.err)
		f.err = msg.err
		return
	}

	f.err = nil
	f.dropdown.SetRecords(msg.records)
}

// View renders the field.
func (f *Field[T]) View() string {
	return f.dropdown.View()
}

// Height returns the number of lines the field occupies.
func (f *Field[T]) Height() int {
	return f.dropdown.Height()
}

// SetWidth sets the field width.
func (f *Field[T]) SetWidth(width int) {
	f.dropdown.SetWidth(width)
}

// SetOrigin records where the field is drawn, for mouse hit testing.
func (f *Field[T]) SetOrigin(x, y int) {
	f.dropdown.SetOrigin(x, y)
}

// Focus gives the field focus.
func (f *Field[T]) Focus() tea.Cmd {
	return f.dropdown.Focus()
}

// Blur releases focus and closes the dropdown.
func (f *Field[T]) Blur() {
	f.dropdown.Blur()
}

// Focused reports whether the field has focus.
func (f *Field[T]) Focused() bool {
	return f.dropdown.Focused()
}

// Selected returns the chosen record, if any.
func (f *Field[T]) Selected() (T, bool) {
	if f.selected == nil {
		var zero T
		return zero, false
	}
	return *f.selected, true
}

// SelectedText returns the chosen record's selected text, or "".
func (f *Field[T]) SelectedText() string {
	if f.selected == nil {
		return ""
	}
	return f.dropdown.Strategy().SelectedText(*f.selected)
}

// Err returns the last search error, cleared by the next successful search.
func (f *Field[T]) Err() error {
	return f.err
}

// Loading reports whether a backend search is running.
func (f *Field[T]) Loading() bool {
	return f.dropdown.Loading()
}

// Open reports whether the dropdown is showing.
func (f *Field[T]) Open() bool {
	return f.dropdown.Open()
}

// Query returns the current query text.
func (f *Field[T]) Query() string {
	return f.dropdown.Query()
}

// Matches returns the current filtered candidates.
func (f *Field[T]) Matches() []T {
	return f.dropdown.Matches()
}

// SetRecords replaces the candidate records, e.g. with a cached list.
func (f *Field[T]) SetRecords(records []T) {
	f.dropdown.SetRecords(records)
}

// SetDisabled enables or disables the field.
func (f *Field[T]) SetDisabled(disabled bool) {
	f.dropdown.SetDisabled(disabled)
	if disabled {
		f.debouncer.Stop()
		f.dropdown.SetLoading(false)
	}
}

// Disabled reports whether the field ignores input.
func (f *Field[T]) Disabled() bool {
	return f.dropdown.Disabled()
}

// SetMinQueryLength changes how many characters trigger a search.
func (f *Field[T]) SetMinQueryLength(n int) {
	f.dropdown.SetMinQueryLength(n)
}

// SetDebounce changes the quiet window before a search runs.
func (f *Field[T]) SetDebounce(window time.Duration) {
	f.debouncer.SetWindow(window)
}

// Reset cancels any search and empties the field.
func (f *Field[T]) Reset() {
	f.debouncer.Stop()
	f.dropdown.Reset()
	f.dropdown.SetRecords(nil)
	f.selected = nil
	f.err = nil
}

// Stop cancels any pending or running search.
func (f *Field[T]) Stop() {
	f.debouncer.Stop()
	f.dropdown.SetLoading(false)
}
