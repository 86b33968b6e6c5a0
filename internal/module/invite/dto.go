package invite

import (
	"time"

	"github.com/google/uuid"

	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/utils/pagination"
)

// CreateBulkRequest issues invites for a batch of email addresses. A nil
// ExpiryDays falls back to the organization's policy, then the global
// default; zero or negative means the invites never expire.
type CreateBulkRequest struct {
	Emails         []string    `json:"emails" binding:"required,min=1,dive,email"`
	OrganizationID uuid.UUID   `json:"organization_id" binding:"required"`
	RoleID         uuid.UUID   `json:"role_id" binding:"required"`
	Kind           Kind        `json:"kind" binding:"required"`
	ProjectIDs     []uuid.UUID `json:"project_ids"`
	DepartmentIDs  []uuid.UUID `json:"department_ids"`
	TeamIDs        []uuid.UUID `json:"team_ids"`
	ContactIDs     []uuid.UUID `json:"contact_ids"`
	ExpiryDays     *int        `json:"expiry_days"`

	// ActionDate records a work-start or application date on the minted
	// invites, typically set when inviting employees.
	ActionDate *time.Time `json:"action_date"`
}

// BulkResult is the outcome of a bulk issuance. Ignored counts the emails
// skipped because an invite record already existed.
type BulkResult struct {
	Items   []Invite `json:"items"`
	Total   int      `json:"total"`
	Ignored int      `json:"ignored"`
}

// ResendRequest asks for an invite to be reissued: a fresh token and
// expiry are written and the email is sent again. A nil ExpiryDays falls
// back to the organization's policy, then the global default.
type ResendRequest struct {
	InviteID   uuid.UUID `json:"invite_id" binding:"required"`
	ExpiryDays *int      `json:"expiry_days"`
}

// ResendResult reports a resend outcome. SendError carries a queueing
// failure as a value rather than failing the request.
type ResendResult struct {
	InviteID  uuid.UUID `json:"invite_id"`
	Email     string    `json:"email"`
	SendError string    `json:"send_error,omitempty"`
}

// ContactInviteRequest invites an organization contact to collaborate.
type ContactInviteRequest struct {
	OrganizationID        uuid.UUID `json:"organization_id" binding:"required"`
	OrganizationContactID uuid.UUID `json:"organization_contact_id" binding:"required"`
}

// ValidateRequest checks whether an email/token pair identifies a live
// invite.
type ValidateRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// ValidatedInvite is the minimal projection returned to the unauthenticated
// acceptance page.
type ValidatedInvite struct {
	ID               uuid.UUID       `json:"id"`
	Email            string          `json:"email"`
	OrganizationID   uuid.UUID       `json:"organization_id"`
	OrganizationName string          `json:"organization_name"`
	RoleName         tenant.RoleName `json:"role_name"`
	Kind             Kind            `json:"kind"`
	ExpireDate       *time.Time      `json:"expire_date,omitempty"`
}

// AcceptRequest completes an invite: the invitee proves token possession
// and provides their account details.
type AcceptRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ListRequest filters the invite listing.
type ListRequest struct {
	OrganizationID *uuid.UUID `form:"organization_id"`
	Roles          []string   `form:"roles"`
	WithEmployees  bool       `form:"with_employees"`
	pagination.Pagination
}

// ListResponse is a page of invites.
type ListResponse struct {
	Items []Invite            `json:"items"`
	Page  pagination.PageInfo `json:"page"`
}
