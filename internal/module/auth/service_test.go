package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tenant.Tenant{}, &tenant.Role{}, &user.User{}, &user.Employee{}, &user.Membership{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, zap.NewNop())

	tenantID := uuid.New()
	orgID := uuid.New()
	roleID := uuid.New()

	input := RegisterInput{
		TenantID:       tenantID,
		OrganizationID: orgID,
		RoleID:         roleID,
		Email:          "new.hire@example.com",
		FirstName:      "New",
		LastName:       "Hire",
		Password:       "s3cret-passw0rd",
		CreateEmployee: true,
	}

	u, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "new.hire@example.com", u.Email)
	assert.NotEqual(t, "s3cret-passw0rd", u.PasswordHash)

	var empCount, memCount int64
	require.NoError(t, db.Model(&user.Employee{}).Where("user_id = ?", u.ID).Count(&empCount).Error)
	require.NoError(t, db.Model(&user.Membership{}).Where("user_id = ?", u.ID).Count(&memCount).Error)
	assert.EqualValues(t, 1, empCount)
	assert.EqualValues(t, 1, memCount)
}

func TestService_Register_WithoutEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, zap.NewNop())

	input := RegisterInput{
		TenantID:       uuid.New(),
		OrganizationID: uuid.New(),
		RoleID:         uuid.New(),
		Email:          "viewer@example.com",
		Password:       "s3cret-passw0rd",
	}

	u, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	var empCount int64
	require.NoError(t, db.Model(&user.Employee{}).Where("user_id = ?", u.ID).Count(&empCount).Error)
	assert.EqualValues(t, 0, empCount)
}

func TestService_Register_EmailTaken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, zap.NewNop())

	input := RegisterInput{
		TenantID:       uuid.New(),
		OrganizationID: uuid.New(),
		RoleID:         uuid.New(),
		Email:          "dupe@example.com",
		Password:       "s3cret-passw0rd",
	}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&user.User{}).Where("email = ?", "dupe@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
