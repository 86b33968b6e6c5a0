package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOrganizationNotFound is returned when an organization does not exist.
var ErrOrganizationNotFound = errors.New("organization not found")

// Repository defines organization and scope-entity lookups. The ByIDs
// variants resolve only rows that belong to the given organization; unknown
// IDs are silently dropped and an empty input returns an empty result
// without touching the database.
type Repository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Organization, error)
	GetWithTenant(ctx context.Context, id uuid.UUID) (*Organization, error)
	ContactsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Contact, error)
	DepartmentsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Department, error)
	ProjectsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Project, error)
	TeamsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Team, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new organization repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID retrieves an organization by ID within a tenant.
func (r *repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// GetWithTenant retrieves an organization by ID with its tenant preloaded.
// Used during invite acceptance, where the caller holds no tenant context yet.
func (r *repository) GetWithTenant(ctx context.Context, id uuid.UUID) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("id = ?", id).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// ContactsByIDs resolves contacts belonging to the organization.
func (r *repository) ContactsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Contact, error) {
	if len(ids) == 0 {
		return []Contact{}, nil
	}
	var out []Contact
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&out).Error
	return out, err
}

// DepartmentsByIDs resolves departments belonging to the organization.
func (r *repository) DepartmentsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Department, error) {
	if len(ids) == 0 {
		return []Department{}, nil
	}
	var out []Department
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&out).Error
	return out, err
}

// ProjectsByIDs resolves projects belonging to the organization.
func (r *repository) ProjectsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Project, error) {
	if len(ids) == 0 {
		return []Project{}, nil
	}
	var out []Project
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&out).Error
	return out, err
}

// TeamsByIDs resolves teams belonging to the organization.
func (r *repository) TeamsByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Team, error) {
	if len(ids) == 0 {
		return []Team{}, nil
	}
	var out []Team
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&out).Error
	return out, err
}
