// Package selector implements a typed searchable selector: a case-insensitive
// match filter over an in-memory record list, the dropdown state machine that
// reacts to focus, typing, selection and dismissal, and the render strategy
// that turns records into candidate lines.
//
// The package is UI-agnostic. The state machine is a pure reducer,
//
//	next, effects := selector.Reduce(props, state, event)
//
// so hosts (the Bubble Tea component, tests) own the state value and carry
// out the returned effects themselves. Entity specialisations (patients,
// consumables, staff) are expressed as a Strategy value and reuse the filter
// and reducer unmodified.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any adapter package
package selector
