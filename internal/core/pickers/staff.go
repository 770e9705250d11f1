package pickers

import (
	"strings"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

// Staff returns the hospital personnel selector strategy.
func Staff() selector.Strategy[domain.StaffMember] {
	username := selector.StringField("username", func(s domain.StaffMember) string { return s.Username })
	return selector.Strategy[domain.StaffMember]{
		Label:       "Hospital Personnel",
		Placeholder: "Search for hospital personnel by username, email, or department...",
		Config: selector.Config[domain.StaffMember]{
			Fields: []selector.Field[domain.StaffMember]{
				username,
				selector.StringField("email", func(s domain.StaffMember) string { return s.Email }),
				selector.StringField("departmentName", func(s domain.StaffMember) string { return s.DepartmentName }),
			},
			MinQueryLength:   selector.DefaultMinQueryLength,
			Display:          username,
			NoResultsMessage: "No hospital personnel found",
		},
		Renderer: selector.Renderer[domain.StaffMember]{
			Candidate: staffLines,
		},
	}
}

func staffLines(s domain.StaffMember) []string {
	detail := strings.Join(s.RoleNames(), ", ") + " • " + s.Email
	if s.DepartmentName != "" {
		detail += " • " + s.DepartmentName
	}
	return []string{s.Username, detail}
}
