// Package domain defines the core business entities for frontdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Patient: A registered patient as returned by the hospital backend
//   - ConsumableItem: A stocked consumable (drops, swabs, lenses)
//   - StaffMember: A hospital user with roles and a department
//   - Session: The logged-in user's tokens and identity
//   - Permissions: Capability flags derived from a role list
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
