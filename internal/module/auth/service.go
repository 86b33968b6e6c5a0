package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teampulse/server/internal/module/user"
)

// ErrEmailTaken is returned when registering with an email that already has
// an account in the tenant.
var ErrEmailTaken = errors.New("email already registered")

// RegisterInput carries everything needed to provision an account from an
// accepted invite.
type RegisterInput struct {
	TenantID       uuid.UUID
	OrganizationID uuid.UUID
	RoleID         uuid.UUID
	Email          string
	FirstName      string
	LastName       string
	Password       string
	CreateEmployee bool
}

// Service provisions user accounts.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Register creates a user, its organization membership and, when requested,
// an employee record, all in one transaction.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created *user.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&user.User{}).
			Where("tenant_id = ? AND email = ?", input.TenantID, input.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		u := &user.User{
			ID:           uuid.New(),
			TenantID:     input.TenantID,
			Email:        input.Email,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			PasswordHash: string(hash),
			RoleID:       input.RoleID,
		}
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		membership := &user.Membership{
			ID:             uuid.New(),
			TenantID:       input.TenantID,
			OrganizationID: input.OrganizationID,
			UserID:         u.ID,
		}
		if err := tx.Create(membership).Error; err != nil {
			return err
		}

		if input.CreateEmployee {
			emp := &user.Employee{
				ID:             uuid.New(),
				TenantID:       input.TenantID,
				OrganizationID: input.OrganizationID,
				UserID:         u.ID,
				IsActive:       true,
				StartedWorkOn:  time.Now(),
			}
			if err := tx.Create(emp).Error; err != nil {
				return err
			}
		}

		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", created.ID.String()),
		zap.String("tenant_id", input.TenantID.String()))
	return created, nil
}
