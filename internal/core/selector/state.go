package selector

// State is the per-instance selector state. The zero value is the initial
// Closed state with an empty query.
type State[T any] struct {
	Query   string
	Open    bool
	Focused bool

	// Matches is always Filter(records, Query) for the latest records.
	Matches []T
}

// Props are the inputs owned by the host.
type Props[T any] struct {
	Records  []T
	Config   Config[T]
	Renderer Renderer[T]

	// Disabled turns every event except RecordsChanged and Blur into a no-op.
	Disabled bool
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// Focus is sent when the input gains focus.
type Focus struct{}

// Blur is sent when the host moves focus elsewhere.
type Blur struct{}

// QueryChanged is sent when the user edits the query text.
type QueryChanged struct {
	Query string
}

// Select picks Matches[Index], as a pointer click on a dropdown row does.
type Select struct {
	Index int
}

// Enter picks the first match, if any.
type Enter struct{}

// Clear empties the query.
type Clear struct{}

// Escape dismisses the dropdown and blurs the input.
type Escape struct{}

// ClickOutside is a pointer press outside the component's bounds.
type ClickOutside struct{}

// RecordsChanged is sent after the host replaces Props.Records.
type RecordsChanged struct{}

func (Focus) event()          {}
func (Blur) event()           {}
func (QueryChanged) event()   {}
func (Select) event()         {}
func (Enter) event()          {}
func (Clear) event()          {}
func (Escape) event()         {}
func (ClickOutside) event()   {}
func (RecordsChanged) event() {}

// EffectKind identifies a callback the host must run.
type EffectKind int

const (
	// EffectChange reports new query text (the host's onChange).
	EffectChange EffectKind = iota
	// EffectSelect reports a chosen record (the host's onSelect).
	EffectSelect
	// EffectClear reports the query was cleared (the host's onClear).
	EffectClear
	// EffectFocus asks the host to focus the input.
	EffectFocus
	// EffectBlur asks the host to blur the input.
	EffectBlur
)

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectChange:
		return "change"
	case EffectSelect:
		return "select"
	case EffectClear:
		return "clear"
	case EffectFocus:
		return "focus"
	case EffectBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Effect is a callback request produced by Reduce.
type Effect[T any] struct {
	Kind EffectKind

	// Query is set for EffectChange and EffectSelect.
	Query string

	// Record is set for EffectSelect.
	Record T
}

// Reduce applies ev to s and returns the next state plus the effects the
// host must carry out, in order. It never mutates s.Matches in place.
func Reduce[T any](p Props[T], s State[T], ev Event) (State[T], []Effect[T]) {
	if p.Disabled {
		switch ev.(type) {
		case RecordsChanged, Blur:
		default:
			return s, nil
		}
	}

	switch ev := ev.(type) {
	case Focus:
		s.Focused = true
		s.Open = p.Config.Searchable(s.Query)
		return s, nil

	case Blur:
		s.Focused = false
		s.Open = false
		return s, nil

	case QueryChanged:
		// Editing the query implies focus, so an open dropdown is always focused.
		s.Focused = true
		s.Query = ev.Query
		s.Matches = Filter(p.Records, ev.Query, p.Config)
		s.Open = p.Config.Searchable(ev.Query)
		return s, []Effect[T]{{Kind: EffectChange, Query: ev.Query}}

	case Select:
		if ev.Index < 0 || ev.Index >= len(s.Matches) {
			return s, nil
		}
		return selectRecord(p, s, s.Matches[ev.Index])

	case Enter:
		if len(s.Matches) == 0 {
			return s, nil
		}
		return selectRecord(p, s, s.Matches[0])

	case Clear:
		s.Query = ""
		s.Matches = nil
		s.Open = false
		s.Focused = true
		return s, []Effect[T]{
			{Kind: EffectChange},
			{Kind: EffectClear},
			{Kind: EffectFocus},
		}

	case Escape:
		s.Open = false
		s.Focused = false
		return s, []Effect[T]{{Kind: EffectBlur}}

	case ClickOutside:
		s.Open = false
		return s, nil

	case RecordsChanged:
		s.Matches = Filter(p.Records, s.Query, p.Config)
		return s, nil
	}

	return s, nil
}

func selectRecord[T any](p Props[T], s State[T], rec T) (State[T], []Effect[T]) {
	text := SelectedText(p.Config, p.Renderer, rec)
	s.Query = text
	s.Matches = Filter(p.Records, text, p.Config)
	s.Open = false
	return s, []Effect[T]{{Kind: EffectSelect, Query: text, Record: rec}}
}
