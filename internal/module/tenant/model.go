package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the top-level isolation boundary. Every row in the system is
// scoped to exactly one tenant.
type Tenant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Tenant) TableName() string {
	return "tenants"
}

// RoleName identifies a role within a tenant.
type RoleName string

const (
	RoleSuperAdmin RoleName = "SUPER_ADMIN"
	RoleAdmin      RoleName = "ADMIN"
	RoleManager    RoleName = "MANAGER"
	RoleEmployee   RoleName = "EMPLOYEE"
	RoleViewer     RoleName = "VIEWER"
)

// Role represents a tenant-scoped role.
type Role struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name     RoleName  `json:"name" gorm:"not null"`
}

// TableName returns the database table name.
func (Role) TableName() string {
	return "roles"
}

// IsSuperAdmin returns true for the SUPER_ADMIN role.
func (r *Role) IsSuperAdmin() bool {
	return r != nil && r.Name == RoleSuperAdmin
}

// CanGrant reports whether an inviter holding this role may issue an invite
// for the target role. Only SUPER_ADMIN issuance is authority-gated: a
// SUPER_ADMIN invite requires a SUPER_ADMIN inviter.
func (r *Role) CanGrant(target *Role) bool {
	if target != nil && target.Name == RoleSuperAdmin {
		return r.IsSuperAdmin()
	}
	return true
}
