package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func props() Props[person] {
	return Props[person]{Records: people(), Config: peopleConfig()}
}

func kinds(effects []Effect[person]) []EffectKind {
	out := make([]EffectKind, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.Kind)
	}
	return out
}

func TestReduce_InitialStateIsClosed(t *testing.T) {
	var s State[person]
	assert.False(t, s.Open)
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Matches)
}

func TestReduce_Focus(t *testing.T) {
	p := props()

	s, effects := Reduce(p, State[person]{}, Focus{})
	assert.True(t, s.Focused)
	assert.False(t, s.Open, "short query stays closed")
	assert.Empty(t, effects)

	s, _ = Reduce(p, State[person]{Query: "ai"}, Focus{})
	assert.True(t, s.Open)
}

func TestReduce_QueryChanged(t *testing.T) {
	p := props()

	s, effects := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "Ai"})
	assert.True(t, s.Open)
	assert.Equal(t, "Ai", s.Query)
	assert.Equal(t, []int{1, 3}, ids(s.Matches))
	require.Len(t, effects, 1)
	assert.Equal(t, EffectChange, effects[0].Kind)
	assert.Equal(t, "Ai", effects[0].Query)

	s, effects = Reduce(p, s, QueryChanged{Query: "A"})
	assert.False(t, s.Open)
	assert.Empty(t, s.Matches)
	assert.Equal(t, []EffectKind{EffectChange}, kinds(effects))
}

func TestReduce_QueryChangedWhileUnfocusedTakesFocus(t *testing.T) {
	s, _ := Reduce(props(), State[person]{}, QueryChanged{Query: "ai"})

	assert.True(t, s.Focused)
	assert.True(t, s.Open)
	assert.Equal(t, []int{1, 3}, ids(s.Matches))
}

func TestReduce_QueryChangedWithNoMatchesStaysOpen(t *testing.T) {
	s, _ := Reduce(props(), State[person]{Focused: true}, QueryChanged{Query: "zz"})

	assert.True(t, s.Open)
	assert.Empty(t, s.Matches)
}

func TestReduce_EnterSelectsFirstMatch(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	s, effects := Reduce(p, s, Enter{})

	assert.False(t, s.Open)
	assert.Equal(t, "Aisha", s.Query)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectSelect, effects[0].Kind)
	assert.Equal(t, 1, effects[0].Record.ID)
	assert.Equal(t, "Aisha", effects[0].Query)
}

func TestReduce_EnterWithoutMatchesIsNoop(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "zz"})

	next, effects := Reduce(p, s, Enter{})

	assert.Equal(t, s, next)
	assert.Empty(t, effects)
}

func TestReduce_SelectByIndex(t *testing.T) {
	p := props()
	p.Renderer = Renderer[person]{Selected: fullName}
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	s, effects := Reduce(p, s, Select{Index: 1})

	assert.False(t, s.Open)
	assert.Equal(t, "Grace Aine", s.Query)
	require.Len(t, effects, 1)
	assert.Equal(t, 3, effects[0].Record.ID)
}

func TestReduce_SelectOutOfRangeIsNoop(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	for _, idx := range []int{-1, 2, 10} {
		next, effects := Reduce(p, s, Select{Index: idx})
		assert.Equal(t, s, next, "index %d", idx)
		assert.Empty(t, effects, "index %d", idx)
	}
}

func TestReduce_Clear(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	s, effects := Reduce(p, s, Clear{})

	assert.Empty(t, s.Query)
	assert.Empty(t, s.Matches)
	assert.False(t, s.Open)
	assert.True(t, s.Focused)
	assert.Equal(t, []EffectKind{EffectChange, EffectClear, EffectFocus}, kinds(effects))
	assert.Empty(t, effects[0].Query)
}

func TestReduce_Escape(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	next, effects := Reduce(p, s, Escape{})

	assert.False(t, next.Open)
	assert.False(t, next.Focused)
	assert.Equal(t, s.Query, next.Query)
	assert.Equal(t, []EffectKind{EffectBlur}, kinds(effects))
}

func TestReduce_ClickOutsideKeepsQueryAndMatches(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})
	require.True(t, s.Open)

	next, effects := Reduce(p, s, ClickOutside{})

	assert.False(t, next.Open)
	assert.Equal(t, s.Query, next.Query)
	assert.Equal(t, s.Matches, next.Matches)
	assert.Empty(t, effects)
}

func TestReduce_Blur(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})

	s, effects := Reduce(p, s, Blur{})

	assert.False(t, s.Open)
	assert.False(t, s.Focused)
	assert.Empty(t, effects)
}

func TestReduce_RecordsChangedRecomputesMatches(t *testing.T) {
	p := props()
	s, _ := Reduce(p, State[person]{Focused: true}, QueryChanged{Query: "ai"})
	require.Equal(t, []int{1, 3}, ids(s.Matches))

	p.Records = append(p.Records, person{ID: 4, FirstName: "Kaitlyn"})
	s, effects := Reduce(p, s, RecordsChanged{})

	assert.Equal(t, []int{1, 3, 4}, ids(s.Matches))
	assert.True(t, s.Open)
	assert.Empty(t, effects)
}

func TestReduce_DisabledIgnoresInput(t *testing.T) {
	p := props()
	p.Disabled = true
	start := State[person]{Query: "ai"}

	for _, ev := range []Event{Focus{}, QueryChanged{Query: "mo"}, Enter{}, Select{}, Clear{}, Escape{}, ClickOutside{}} {
		next, effects := Reduce(p, start, ev)
		assert.Equal(t, start, next, "%T", ev)
		assert.Empty(t, effects, "%T", ev)
	}

	next, _ := Reduce(p, start, RecordsChanged{})
	assert.Equal(t, []int{1, 3}, ids(next.Matches))
}

// Typing "Ai" shows Aisha, then Enter selects her and closes the dropdown.
func TestReduce_TypeThenEnterScenario(t *testing.T) {
	p := props()
	var s State[person]
	var selected []person

	apply := func(ev Event) {
		var effects []Effect[person]
		s, effects = Reduce(p, s, ev)
		for _, e := range effects {
			if e.Kind == EffectSelect {
				selected = append(selected, e.Record)
			}
		}
	}

	apply(Focus{})
	apply(QueryChanged{Query: "A"})
	assert.False(t, s.Open)
	apply(QueryChanged{Query: "Ai"})
	assert.True(t, s.Open)
	apply(Enter{})

	require.Len(t, selected, 1)
	assert.Equal(t, "Aisha", selected[0].FirstName)
	assert.Equal(t, "Aisha", s.Query)
	assert.False(t, s.Open)
}

func TestReduce_MatchesInvariantHolds(t *testing.T) {
	p := props()
	var s State[person]
	events := []Event{
		Focus{}, QueryChanged{Query: "m"}, QueryChanged{Query: "mo"}, Select{Index: 0},
		Clear{}, QueryChanged{Query: "07"}, ClickOutside{}, Focus{}, Escape{},
	}

	for _, ev := range events {
		s, _ = Reduce(p, s, ev)
		if len(s.Matches) > 0 {
			assert.GreaterOrEqual(t, QueryLen(s.Query), p.Config.MinQueryLength, "%T", ev)
		}
		assert.Equal(t, Filter(p.Records, s.Query, p.Config), s.Matches, "%T", ev)
	}
}

func TestEffectKind_String(t *testing.T) {
	assert.Equal(t, "change", EffectChange.String())
	assert.Equal(t, "select", EffectSelect.String())
	assert.Equal(t, "clear", EffectClear.String())
	assert.Equal(t, "focus", EffectFocus.String())
	assert.Equal(t, "blur", EffectBlur.String())
	assert.Equal(t, "unknown", EffectKind(99).String())
}
