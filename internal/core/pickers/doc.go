// Package pickers provides the selector strategies for the front desk's
// entity types: patients, consumable items and hospital personnel.
//
// Each strategy is a plain selector.Strategy value. The generic filter and
// state machine are shared; only the searched fields, display field and
// rendering differ.
//
// # Import Rules
//
//   - Can Import: domain, selector, golang.org/x/text
//   - Cannot Import: services, adapters
package pickers
