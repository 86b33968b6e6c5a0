package invite

import (
	"time"

	"github.com/google/uuid"

	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
)

// Status is the lifecycle state of an invite.
type Status string

const (
	StatusInvited  Status = "INVITED"
	StatusAccepted Status = "ACCEPTED"
	StatusExpired  Status = "EXPIRED"
	StatusArchived Status = "ARCHIVED"
)

// Kind selects the acceptance flow and email template for an invite.
type Kind string

const (
	KindUser                Kind = "USER"
	KindEmployee            Kind = "EMPLOYEE"
	KindOrganizationContact Kind = "ORGANIZATION_CONTACT"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindEmployee, KindOrganizationContact:
		return true
	}
	return false
}

// Invite is a pending offer for an email address to join an organization
// under a given role. A nil ExpireDate means the invite never expires.
type Invite struct {
	ID             uuid.UUID                  `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID                  `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID                  `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *organization.Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Email          string                     `json:"email" gorm:"not null;index"`
	Token          string                     `json:"token" gorm:"not null"`
	Status         Status                     `json:"status" gorm:"not null;default:'INVITED'"`
	Kind           Kind                       `json:"kind" gorm:"not null"`
	RoleID         uuid.UUID                  `json:"role_id" gorm:"type:uuid;not null"`
	Role           tenant.Role                `json:"role" gorm:"foreignKey:RoleID"`
	InvitedByID    *uuid.UUID                 `json:"invited_by_id,omitempty" gorm:"type:uuid"`
	InvitedBy      *user.User                 `json:"invited_by,omitempty" gorm:"foreignKey:InvitedByID"`
	ExpireDate     *time.Time                 `json:"expire_date,omitempty"`
	ActionDate     *time.Time                 `json:"action_date,omitempty"`

	// Contact invites point back at the contact record they were issued for.
	OrganizationContactID *uuid.UUID `json:"organization_contact_id,omitempty" gorm:"type:uuid"`

	// Scope associations granted to the invitee on acceptance.
	Projects    []organization.Project    `json:"projects,omitempty" gorm:"many2many:invite_projects"`
	Departments []organization.Department `json:"departments,omitempty" gorm:"many2many:invite_departments"`
	Teams       []organization.Team       `json:"teams,omitempty" gorm:"many2many:invite_teams"`
	Contacts    []organization.Contact    `json:"contacts,omitempty" gorm:"many2many:invite_organization_contacts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Invite) TableName() string {
	return "invites"
}

// IsExpired reports whether the invite's expiry has passed. Expiry is
// evaluated lazily at read time; nothing sweeps stale rows.
func (i *Invite) IsExpired(now time.Time) bool {
	return i.ExpireDate != nil && i.ExpireDate.Before(now)
}

// IsLive reports whether the invite can still be accepted.
func (i *Invite) IsLive(now time.Time) bool {
	return i.Status == StatusInvited && !i.IsExpired(now)
}
