package organization

import (
	"time"

	"github.com/google/uuid"

	"github.com/teampulse/server/internal/module/tenant"
)

// Organization is a workspace within a tenant. InviteExpiryPeriod, when set,
// overrides the global invite expiry default for invites issued against this
// organization.
type Organization struct {
	ID                 uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Tenant             tenant.Tenant `json:"-" gorm:"foreignKey:TenantID"`
	Name               string        `json:"name" gorm:"not null"`
	InviteExpiryPeriod *int          `json:"invite_expiry_period,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// TableName returns the database table name.
func (Organization) TableName() string {
	return "organizations"
}

// Contact is an external party (client, vendor) attached to an organization.
type Contact struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	PrimaryEmail   string    `json:"primary_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Contact) TableName() string {
	return "organization_contacts"
}

// Department groups employees within an organization.
type Department struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Department) TableName() string {
	return "organization_departments"
}

// Project is a unit of work within an organization.
type Project struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "organization_projects"
}

// Team is a group of members within an organization.
type Team struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "organization_teams"
}
