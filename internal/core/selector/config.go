package selector

import (
	"errors"
	"fmt"
)

// DefaultMinQueryLength is the minimum number of characters before the
// selector starts matching.
const DefaultMinQueryLength = 2

// DefaultNoResultsMessage is shown when a long-enough query matches nothing.
const DefaultNoResultsMessage = "No results found"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("selector: invalid config")

// Field names a searchable attribute of T and how to read it.
// Value may return nil (or a nil pointer) for an absent attribute.
type Field[T any] struct {
	Name  string
	Value func(T) any
}

// StringField builds a Field over a string attribute.
func StringField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Value: func(rec T) any { return get(rec) }}
}

// Config describes which attributes are searched and displayed.
type Config[T any] struct {
	// Fields are matched in order; a record matches when any one does.
	Fields []Field[T]

	// MinQueryLength is measured in runes. Shorter queries match nothing.
	MinQueryLength int

	// Display is rendered when no custom renderer is supplied.
	Display Field[T]

	// NoResultsMessage overrides DefaultNoResultsMessage.
	NoResultsMessage string
}

// Validate checks every field and the display field resolve to an accessor.
func (c Config[T]) Validate() error {
	if c.MinQueryLength < 0 {
		return fmt.Errorf("%w: min query length %d is negative", ErrInvalidConfig, c.MinQueryLength)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: no search fields", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: search field %d has no name", ErrInvalidConfig, i)
		}
		if f.Value == nil {
			return fmt.Errorf("%w: search field %q has no accessor", ErrInvalidConfig, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: search field %q listed twice", ErrInvalidConfig, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	if c.Display.Name == "" || c.Display.Value == nil {
		return fmt.Errorf("%w: display field is not set", ErrInvalidConfig)
	}
	return nil
}

// FieldNames returns the search field names in order.
func (c Config[T]) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	return names
}

// NoResults returns the configured empty-state message.
func (c Config[T]) NoResults() string {
	if c.NoResultsMessage == "" {
		return DefaultNoResultsMessage
	}
	return c.NoResultsMessage
}

// HintMessage is shown while the query is below the minimum length.
func (c Config[T]) HintMessage() string {
	return fmt.Sprintf("Type at least %d characters to search...", c.MinQueryLength)
}

// DisplayValue returns the display field's string form, or "" when absent.
func (c Config[T]) DisplayValue(rec T) string {
	if c.Display.Value == nil {
		return ""
	}
	s, _ := Stringify(c.Display.Value(rec))
	return s
}
