package invite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/utils/pagination"
)

// ListQuery filters the tenant's invites. When Roles is empty, invites for
// the EMPLOYEE role are excluded unless IncludeEmployees is set; employee
// invites are managed from a separate screen.
type ListQuery struct {
	OrganizationID   *uuid.UUID
	Roles            []tenant.RoleName
	IncludeEmployees bool
	Page             pagination.Pagination
}

// Repository defines invite persistence.
type Repository interface {
	// Transaction runs fn against a transactional copy of the repository.
	Transaction(ctx context.Context, fn func(Repository) error) error

	ExistingEmails(ctx context.Context, tenantID uuid.UUID, emails []string) ([]string, error)
	CreateAll(ctx context.Context, invites []*Invite) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Invite, error)
	FindLive(ctx context.Context, email, token string, now time.Time) (*Invite, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status, actionDate *time.Time) error
	Refresh(ctx context.Context, id uuid.UUID, token string, expireDate *time.Time) error
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]Invite, int64, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new invite repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Transaction runs fn inside a database transaction.
func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// ExistingEmails returns the subset of emails that already have an invite
// record anywhere in the tenant, regardless of status or organization. An
// email holds at most one invite per tenant.
func (r *repository) ExistingEmails(ctx context.Context, tenantID uuid.UUID, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var out []string
	err := r.db.WithContext(ctx).
		Model(&Invite{}).
		Where("tenant_id = ? AND email IN ?", tenantID, emails).
		Distinct().
		Pluck("email", &out).Error
	return out, err
}

// CreateAll inserts invites with their scope associations.
func (r *repository) CreateAll(ctx context.Context, invites []*Invite) error {
	if len(invites) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(invites).Error
}

// GetByID retrieves an invite by ID within a tenant.
func (r *repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Invite, error) {
	var inv Invite
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindLive retrieves the invite matching email and token that is still
// acceptable: status INVITED and not past its expiry. A nil expiry never
// expires.
func (r *repository) FindLive(ctx context.Context, email, token string, now time.Time) (*Invite, error) {
	var inv Invite
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Organization").
		Where("email = ? AND token = ? AND status = ?", email, token, StatusInvited).
		Where("expire_date >= ? OR expire_date IS NULL", now).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// SetStatus updates an invite's status and action date.
func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status, actionDate *time.Time) error {
	updates := map[string]any{"status": status}
	if actionDate != nil {
		updates["action_date"] = actionDate
	}
	result := r.db.WithContext(ctx).
		Model(&Invite{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// Refresh reissues an invite: new token, new expiry, status back to
// INVITED. A nil expireDate clears any previous expiry.
func (r *repository) Refresh(ctx context.Context, id uuid.UUID, token string, expireDate *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&Invite{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"token":       token,
			"status":      StatusInvited,
			"expire_date": expireDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// List returns a page of the tenant's invites with the total count.
func (r *repository) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]Invite, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.
			Joins("JOIN roles ON roles.id = invites.role_id").
			Where("invites.tenant_id = ?", tenantID)

		if q.OrganizationID != nil {
			db = db.Where("invites.organization_id = ?", *q.OrganizationID)
		}

		if len(q.Roles) > 0 {
			db = db.Where("roles.name IN ?", q.Roles)
		} else if !q.IncludeEmployees {
			db = db.Where("roles.name <> ?", tenant.RoleEmployee)
		}
		return db
	}

	// Count and select run as separate queries: the select restricts its
	// columns to the invites table so the joined role columns cannot bleed
	// into the scan, and a column-restricted count does not work everywhere.
	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&Invite{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Invite
	err := filter(r.db.WithContext(ctx).Model(&Invite{})).
		Select("invites.*").
		Preload("Role").
		Preload("Projects").
		Preload("Departments").
		Preload("Teams").
		Preload("Contacts").
		Order("invites.created_at DESC").
		Limit(q.Page.Limit()).
		Offset(q.Page.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
