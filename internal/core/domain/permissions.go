package domain

import "slices"

// Role names issued by the hospital backend.
const (
	RoleSuperAdmin      = "SUPER_ADMIN"
	RoleAdmin           = "ADMIN"
	RoleReceptionist    = "RECEPTIONIST"
	RoleDoctor          = "DOCTOR"
	RoleOptometrist     = "OPTOMETRIST"
	RoleOphthalmologist = "OPHTHALMOLOGIST"
)

// Permissions holds capability flags derived from a user's role list.
// The zero value grants nothing.
type Permissions struct {
	Roles []string

	CanCreatePatients      bool
	CanUpdatePatients      bool
	CanDeletePatients      bool
	CanCreateVisitSessions bool
	CanUpdateVisitSessions bool
	CanCreateExaminations  bool
	CanUpdateExaminations  bool
	CanCreateTriage        bool
	CanUpdateTriage        bool

	IsDoctor       bool
	IsReceptionist bool
	IsAdmin        bool
}

// PermissionsForRoles derives capability flags from role names.
// SUPER_ADMIN implies every flag.
func PermissionsForRoles(roles []string) Permissions {
	has := func(names ...string) bool {
		for _, n := range names {
			if slices.Contains(roles, n) {
				return true
			}
		}
		return false
	}

	clinical := has(RoleDoctor, RoleOptometrist, RoleOphthalmologist, RoleSuperAdmin)
	reception := has(RoleReceptionist, RoleSuperAdmin)

	return Permissions{
		Roles:                  slices.Clone(roles),
		CanCreatePatients:      reception,
		CanUpdatePatients:      has(RoleReceptionist, RoleSuperAdmin, RoleOptometrist, RoleOphthalmologist),
		CanDeletePatients:      has(RoleSuperAdmin),
		CanCreateVisitSessions: reception,
		CanUpdateVisitSessions: reception,
		CanCreateExaminations:  clinical,
		CanUpdateExaminations:  clinical,
		CanCreateTriage:        clinical,
		CanUpdateTriage:        clinical,
		IsDoctor:               clinical,
		IsReceptionist:         reception,
		IsAdmin:                has(RoleAdmin, RoleSuperAdmin),
	}
}

// HasRole reports whether the role list contains name.
func (p Permissions) HasRole(name string) bool {
	return slices.Contains(p.Roles, name)
}

// HasAnyRole reports whether the role list contains any of names.
func (p Permissions) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if p.HasRole(n) {
			return true
		}
	}
	return false
}

// CanRecordUsage reports whether the user may record consumable usage.
func (p Permissions) CanRecordUsage() bool {
	return p.IsDoctor || p.IsReceptionist || p.IsAdmin
}
