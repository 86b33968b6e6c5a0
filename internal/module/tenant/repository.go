package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Domain errors.
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrRoleNotFound   = errors.New("role not found")
)

// Repository defines tenant and role lookups.
type Repository interface {
	GetTenantByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetRoleByID(ctx context.Context, tenantID, id uuid.UUID) (*Role, error)
	GetRoleByName(ctx context.Context, tenantID uuid.UUID, name RoleName) (*Role, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new tenant repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetTenantByID retrieves a tenant by ID.
func (r *repository) GetTenantByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetRoleByID retrieves a role by ID within a tenant.
func (r *repository) GetRoleByID(ctx context.Context, tenantID, id uuid.UUID) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// GetRoleByName retrieves a role by name within a tenant.
func (r *repository) GetRoleByName(ctx context.Context, tenantID uuid.UUID, name RoleName) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}
