package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsSuperAdmin(t *testing.T) {
	assert.True(t, (&Role{Name: RoleSuperAdmin}).IsSuperAdmin())
	assert.False(t, (&Role{Name: RoleAdmin}).IsSuperAdmin())
	assert.False(t, (*Role)(nil).IsSuperAdmin())
}

func TestRole_CanGrant(t *testing.T) {
	tests := []struct {
		name     string
		inviter  RoleName
		target   RoleName
		expected bool
	}{
		{"super admin grants super admin", RoleSuperAdmin, RoleSuperAdmin, true},
		{"admin grants super admin", RoleAdmin, RoleSuperAdmin, false},
		{"manager grants super admin", RoleManager, RoleSuperAdmin, false},
		{"admin grants employee", RoleAdmin, RoleEmployee, true},
		{"viewer grants admin", RoleViewer, RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inviter := &Role{Name: tt.inviter}
			target := &Role{Name: tt.target}
			assert.Equal(t, tt.expected, inviter.CanGrant(target))
		})
	}
}
