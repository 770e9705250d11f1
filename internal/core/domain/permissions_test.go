package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsForRoles_NoRoles(t *testing.T) {
	p := PermissionsForRoles(nil)

	assert.Equal(t, Permissions{}, p)
	assert.False(t, p.CanRecordUsage())
}

func TestPermissionsForRoles(t *testing.T) {
	tests := []struct {
		role        string
		create      bool
		update      bool
		deletePerms bool
		doctor      bool
		reception   bool
		admin       bool
	}{
		{RoleSuperAdmin, true, true, true, true, true, true},
		{RoleAdmin, false, false, false, false, false, true},
		{RoleReceptionist, true, true, false, false, true, false},
		{RoleDoctor, false, false, false, true, false, false},
		{RoleOptometrist, false, true, false, true, false, false},
		{RoleOphthalmologist, false, true, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			p := PermissionsForRoles([]string{tt.role})

			assert.Equal(t, tt.create, p.CanCreatePatients)
			assert.Equal(t, tt.update, p.CanUpdatePatients)
			assert.Equal(t, tt.deletePerms, p.CanDeletePatients)
			assert.Equal(t, tt.doctor, p.IsDoctor)
			assert.Equal(t, tt.doctor, p.CanCreateExaminations)
			assert.Equal(t, tt.doctor, p.CanUpdateTriage)
			assert.Equal(t, tt.reception, p.IsReceptionist)
			assert.Equal(t, tt.reception, p.CanCreateVisitSessions)
			assert.Equal(t, tt.admin, p.IsAdmin)
			assert.True(t, p.CanRecordUsage())
		})
	}
}

func TestPermissions_UnknownRoleGrantsNothing(t *testing.T) {
	p := PermissionsForRoles([]string{"JANITOR"})

	assert.False(t, p.CanRecordUsage())
	assert.True(t, p.HasRole("JANITOR"))
	assert.False(t, p.HasAnyRole(RoleDoctor, RoleAdmin))
}

func TestPermissions_RolesAreCopied(t *testing.T) {
	roles := []string{RoleDoctor}
	p := PermissionsForRoles(roles)
	roles[0] = RoleAdmin

	assert.True(t, p.HasRole(RoleDoctor))
	assert.False(t, p.HasRole(RoleAdmin))
}
