package invite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/server/internal/module/auth"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
)

func TestAcceptService_Accept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv := f.createInvite(t, "joiner@example.com", KindUser, tenant.RoleManager, nil)

	registered, err := f.accept.Accept(ctx, &AcceptRequest{
		Email:     "joiner@example.com",
		Token:     inv.Token,
		Password:  "s3cret-passw0rd",
		FirstName: "Jo",
		LastName:  "Iner",
	})
	require.NoError(t, err)

	assert.Equal(t, "joiner@example.com", registered.Email)
	assert.Equal(t, f.tenantID, registered.TenantID)
	assert.Equal(t, inv.RoleID, registered.RoleID)

	var stored Invite
	require.NoError(t, f.db.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, StatusAccepted, stored.Status)
	assert.NotNil(t, stored.ActionDate)

	// USER invites don't create an employee record.
	var empCount int64
	require.NoError(t, f.db.Model(&user.Employee{}).Where("user_id = ?", registered.ID).Count(&empCount).Error)
	assert.EqualValues(t, 0, empCount)

	// Tenant super admins are notified.
	require.Len(t, f.mailer.accepted, 1)
	assert.Contains(t, f.mailer.accepted[0].AdminEmails, f.admin.Email)
	assert.Equal(t, "joiner@example.com", f.mailer.accepted[0].JoinedEmail)
}

func TestAcceptService_AcceptEmployee(t *testing.T) {
	f := newFixture(t)

	inv := f.createInvite(t, "worker@example.com", KindEmployee, tenant.RoleEmployee, nil)

	registered, err := f.accept.Accept(context.Background(), &AcceptRequest{
		Email:    "worker@example.com",
		Token:    inv.Token,
		Password: "s3cret-passw0rd",
	})
	require.NoError(t, err)

	var emp user.Employee
	require.NoError(t, f.db.First(&emp, "user_id = ?", registered.ID).Error)
	assert.Equal(t, f.org.ID, emp.OrganizationID)
	assert.True(t, emp.IsActive)
}

func TestAcceptService_InvalidToken(t *testing.T) {
	f := newFixture(t)

	f.createInvite(t, "joiner@example.com", KindUser, tenant.RoleManager, nil)

	_, err := f.accept.Accept(context.Background(), &AcceptRequest{
		Email:    "joiner@example.com",
		Token:    "forged",
		Password: "s3cret-passw0rd",
	})
	assert.ErrorIs(t, err, ErrInvalidInvite)
}

func TestAcceptService_RegistrationFailureLeavesInviteOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The invited address already has an account in the tenant.
	f.createUser(t, "joiner@example.com", tenant.RoleViewer)
	inv := f.createInvite(t, "joiner@example.com", KindUser, tenant.RoleManager, nil)

	_, err := f.accept.Accept(ctx, &AcceptRequest{
		Email:    "joiner@example.com",
		Token:    inv.Token,
		Password: "s3cret-passw0rd",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	// The invite is untouched and can be retried after cleanup.
	var stored Invite
	require.NoError(t, f.db.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, StatusInvited, stored.Status)
}

func TestAcceptService_SecondAcceptFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv := f.createInvite(t, "joiner@example.com", KindUser, tenant.RoleManager, nil)

	req := &AcceptRequest{
		Email:    "joiner@example.com",
		Token:    inv.Token,
		Password: "s3cret-passw0rd",
	}
	_, err := f.accept.Accept(ctx, req)
	require.NoError(t, err)

	_, err = f.accept.Accept(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInvite)
}
