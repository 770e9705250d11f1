package domain

import "slices"

// Role is a named role assigned to a staff member.
type Role struct {
	ID   int64
	Name string
}

// StaffMember is a hospital user (doctor, receptionist, administrator).
type StaffMember struct {
	ID             int64
	Username       string
	Email          string
	DepartmentName string
	Roles          []Role
}

// RoleNames returns the names of the member's roles in their given order.
func (s *StaffMember) RoleNames() []string {
	names := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasAnyRole reports whether the member holds at least one of the roles.
func (s *StaffMember) HasAnyRole(roles ...string) bool {
	for _, r := range s.Roles {
		if slices.Contains(roles, r.Name) {
			return true
		}
	}
	return false
}

// IsClinician reports whether the member can see patients.
func (s *StaffMember) IsClinician() bool {
	return s.HasAnyRole(RoleDoctor, RoleOptometrist, RoleOphthalmologist)
}
