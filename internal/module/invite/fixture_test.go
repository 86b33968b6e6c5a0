package invite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teampulse/server/internal/module/auth"
	"github.com/teampulse/server/internal/module/email"
	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
)

// fakeMailer records queued invitation emails.
type fakeMailer struct {
	mu       sync.Mutex
	users    []email.InvitePayload
	empls    []email.InvitePayload
	contacts []email.InvitePayload
	accepted []email.AcceptedPayload
	fail     bool
}

func (f *fakeMailer) InviteUser(ctx context.Context, p email.InvitePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return email.ErrQueueFull
	}
	f.users = append(f.users, p)
	return nil
}

func (f *fakeMailer) InviteEmployee(ctx context.Context, p email.InvitePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return email.ErrQueueFull
	}
	f.empls = append(f.empls, p)
	return nil
}

func (f *fakeMailer) InviteOrganizationContact(ctx context.Context, p email.InvitePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return email.ErrQueueFull
	}
	f.contacts = append(f.contacts, p)
	return nil
}

func (f *fakeMailer) InviteAccepted(ctx context.Context, p email.AcceptedPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return email.ErrQueueFull
	}
	f.accepted = append(f.accepted, p)
	return nil
}

// fixture wires a fully seeded invite service against an in-memory database.
type fixture struct {
	db     *gorm.DB
	svc    *Service
	accept *AcceptService
	mailer *fakeMailer

	tenantID uuid.UUID
	org      *organization.Organization
	roles    map[tenant.RoleName]*tenant.Role
	admin    *user.User
	manager  *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&tenant.Tenant{}, &tenant.Role{},
		&organization.Organization{}, &organization.Contact{},
		&organization.Department{}, &organization.Project{}, &organization.Team{},
		&user.User{}, &user.Employee{}, &user.Membership{},
		&Invite{},
	))

	f := &fixture{
		db:       db,
		mailer:   &fakeMailer{},
		tenantID: uuid.New(),
		roles:    make(map[tenant.RoleName]*tenant.Role),
	}

	require.NoError(t, db.Create(&tenant.Tenant{ID: f.tenantID, Name: "Acme Tenant"}).Error)
	for _, name := range []tenant.RoleName{
		tenant.RoleSuperAdmin, tenant.RoleAdmin, tenant.RoleManager,
		tenant.RoleEmployee, tenant.RoleViewer,
	} {
		role := &tenant.Role{ID: uuid.New(), TenantID: f.tenantID, Name: name}
		require.NoError(t, db.Create(role).Error)
		f.roles[name] = role
	}

	f.org = &organization.Organization{
		ID:       uuid.New(),
		TenantID: f.tenantID,
		Name:     "Acme",
	}
	require.NoError(t, db.Create(f.org).Error)

	f.admin = f.createUser(t, "admin@example.com", tenant.RoleSuperAdmin)
	f.manager = f.createUser(t, "manager@example.com", tenant.RoleManager)

	repo := NewRepository(db)
	orgRepo := organization.NewRepository(db)
	userRepo := user.NewRepository(db)
	tenantRepo := tenant.NewRepository(db)
	issuer := NewTokenIssuer("test-secret")
	throttle := NewResendThrottle(nil, 0, zap.NewNop())

	f.svc = NewService(repo, orgRepo, userRepo, tenantRepo, f.mailer, issuer, throttle,
		Options{DefaultExpiryDays: 7, ClientBaseURL: "http://localhost:4200"}, nil, zap.NewNop())

	registrar := auth.NewService(db, zap.NewNop())
	f.accept = NewAcceptService(repo, orgRepo, userRepo, registrar, f.mailer, nil, zap.NewNop())

	return f
}

func (f *fixture) createUser(t *testing.T, addr string, role tenant.RoleName) *user.User {
	t.Helper()
	u := &user.User{
		ID:           uuid.New(),
		TenantID:     f.tenantID,
		Email:        addr,
		PasswordHash: "x",
		RoleID:       f.roles[role].ID,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) createContact(t *testing.T, addr string) *organization.Contact {
	t.Helper()
	c := &organization.Contact{
		ID:             uuid.New(),
		TenantID:       f.tenantID,
		OrganizationID: f.org.ID,
		Name:           "Contact " + addr,
		PrimaryEmail:   addr,
	}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) createProject(t *testing.T, name string) *organization.Project {
	t.Helper()
	p := &organization.Project{
		ID:             uuid.New(),
		TenantID:       f.tenantID,
		OrganizationID: f.org.ID,
		Name:           name,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) createTeam(t *testing.T, name string) *organization.Team {
	t.Helper()
	team := &organization.Team{
		ID:             uuid.New(),
		TenantID:       f.tenantID,
		OrganizationID: f.org.ID,
		Name:           name,
	}
	require.NoError(t, f.db.Create(team).Error)
	return team
}

func (f *fixture) createInvite(t *testing.T, addr string, kind Kind, role tenant.RoleName, mutate func(*Invite)) *Invite {
	t.Helper()
	token, err := f.svc.issuer.Sign(addr)
	require.NoError(t, err)

	inv := &Invite{
		ID:             uuid.New(),
		TenantID:       f.tenantID,
		OrganizationID: f.org.ID,
		Email:          addr,
		Token:          token,
		Status:         StatusInvited,
		Kind:           kind,
		RoleID:         f.roles[role].ID,
	}
	if mutate != nil {
		mutate(inv)
	}
	require.NoError(t, f.db.Create(inv).Error)
	return inv
}
