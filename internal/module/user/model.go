package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/teampulse/server/internal/module/tenant"
)

// User is an account within a tenant.
type User struct {
	ID           uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID   `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Email        string      `json:"email" gorm:"not null;index"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	PasswordHash string      `json:"-" gorm:"not null"`
	RoleID       uuid.UUID   `json:"role_id" gorm:"type:uuid;not null"`
	Role         tenant.Role `json:"role" gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// Employee links a user to an organization as a member of its workforce.
type Employee struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	StartedWorkOn  time.Time `json:"started_work_on"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Employee) TableName() string {
	return "employees"
}

// Membership records that a user belongs to an organization.
type Membership struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Membership) TableName() string {
	return "user_organizations"
}
