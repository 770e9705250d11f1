package selector

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// QueryLen returns the query length in runes.
func QueryLen(query string) int {
	return utf8.RuneCountInString(query)
}

// Searchable reports whether query is long enough to match anything.
func (c Config[T]) Searchable(query string) bool {
	return QueryLen(query) >= c.MinQueryLength
}

// Filter returns the records with at least one search field containing query,
// case-insensitively. Input order is preserved and nothing is ranked.
// Queries shorter than the configured minimum return no records.
func Filter[T any](records []T, query string, cfg Config[T]) []T {
	if !cfg.Searchable(query) {
		return nil
	}

	needle := strings.ToLower(query)
	var matches []T
	for _, rec := range records {
		if matchesAny(rec, needle, cfg.Fields) {
			matches = append(matches, rec)
		}
	}
	return matches
}

func matchesAny[T any](rec T, needle string, fields []Field[T]) bool {
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		s, ok := Stringify(f.Value(rec))
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Stringify converts a field value to the text that is matched against.
// It reports false for nil values, including typed nil pointers, so absent
// attributes never match. Pointers are dereferenced; fmt.Stringer is honoured.
func Stringify(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	//nolint:exhaustive // only nil-able kinds need checking
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "", false
		}
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}
	if rv.Kind() == reflect.Pointer {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}
