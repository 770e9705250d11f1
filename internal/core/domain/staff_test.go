package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffMember_Roles(t *testing.T) {
	m := StaffMember{
		Username: "dr.okello",
		Roles:    []Role{{ID: 1, Name: RoleDoctor}, {ID: 2, Name: RoleAdmin}},
	}

	assert.Equal(t, []string{RoleDoctor, RoleAdmin}, m.RoleNames())
	assert.True(t, m.HasAnyRole(RoleReceptionist, RoleAdmin))
	assert.False(t, m.HasAnyRole(RoleReceptionist))
	assert.True(t, m.IsClinician())
}

func TestStaffMember_NoRoles(t *testing.T) {
	var m StaffMember

	assert.Empty(t, m.RoleNames())
	assert.False(t, m.HasAnyRole(RoleDoctor))
	assert.False(t, m.IsClinician())
}
