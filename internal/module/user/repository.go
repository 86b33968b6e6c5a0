package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teampulse/server/internal/module/tenant"
)

// ErrUserNotFound is returned when a user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Repository defines user lookups.
type Repository interface {
	GetByIDWithRole(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	AdminEmails(ctx context.Context, tenantID uuid.UUID) ([]string, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByIDWithRole retrieves a user by ID with the role preloaded.
func (r *repository) GetByIDWithRole(ctx context.Context, tenantID, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves a user by email within a tenant.
func (r *repository) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// AdminEmails returns the email addresses of the tenant's SUPER_ADMIN users.
// Used to notify administrators when an invite is accepted.
func (r *repository) AdminEmails(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.tenant_id = ? AND roles.name = ?", tenantID, tenant.RoleSuperAdmin).
		Pluck("users.email", &emails).Error
	return emails, err
}
