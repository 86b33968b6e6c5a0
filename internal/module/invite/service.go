package invite

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teampulse/server/internal/module/email"
	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
	"github.com/teampulse/server/internal/utils/metrics"
	"github.com/teampulse/server/internal/utils/requestctx"
)

// Options configures invite issuance.
type Options struct {
	// DefaultExpiryDays applies when neither the request nor the
	// organization sets an expiry policy.
	DefaultExpiryDays int

	// ClientBaseURL is the web client origin used to build accept links.
	ClientBaseURL string
}

// Service implements invite issuance, resend, validation and listing.
type Service struct {
	repo    Repository
	orgs    organization.Repository
	users   user.Repository
	tenants tenant.Repository

	mailer   email.Service
	issuer   *TokenIssuer
	throttle *ResendThrottle

	opts    Options
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new invite service. metrics may be nil.
func NewService(
	repo Repository,
	orgs organization.Repository,
	users user.Repository,
	tenants tenant.Repository,
	mailer email.Service,
	issuer *TokenIssuer,
	throttle *ResendThrottle,
	opts Options,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if opts.DefaultExpiryDays <= 0 {
		opts.DefaultExpiryDays = 7
	}
	return &Service{
		repo:     repo,
		orgs:     orgs,
		users:    users,
		tenants:  tenants,
		mailer:   mailer,
		issuer:   issuer,
		throttle: throttle,
		opts:     opts,
		metrics:  m,
		logger:   logger,
	}
}

// CreateBulk issues invites for every email in the request that has no
// existing invite record in the organization. Skipped emails are counted,
// not errored: issuing to a partially-invited list is routine. The
// existence check and the inserts run in one transaction so concurrent
// bulk calls cannot double-invite an email.
func (s *Service) CreateBulk(ctx context.Context, tenantID, inviterID uuid.UUID, req *CreateBulkRequest) (*BulkResult, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	inviter, err := s.users.GetByIDWithRole(ctx, tenantID, inviterID)
	if err != nil {
		return nil, err
	}
	role, err := s.tenants.GetRoleByID(ctx, tenantID, req.RoleID)
	if err != nil {
		return nil, err
	}
	if !inviter.Role.CanGrant(role) {
		return nil, ErrUnauthorizedRole
	}

	org, err := s.orgs.GetByID(ctx, tenantID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	projects, err := s.orgs.ProjectsByIDs(ctx, org.ID, req.ProjectIDs)
	if err != nil {
		return nil, err
	}
	departments, err := s.orgs.DepartmentsByIDs(ctx, org.ID, req.DepartmentIDs)
	if err != nil {
		return nil, err
	}
	teams, err := s.orgs.TeamsByIDs(ctx, org.ID, req.TeamIDs)
	if err != nil {
		return nil, err
	}
	contacts, err := s.orgs.ContactsByIDs(ctx, org.ID, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expireDate := s.expireDate(org, req.ExpiryDays, now)

	addrs := make([]string, 0, len(req.Emails))
	for _, rawEmail := range req.Emails {
		if addr := strings.ToLower(strings.TrimSpace(rawEmail)); addr != "" {
			addrs = append(addrs, addr)
		}
	}

	var created []*Invite
	err = s.repo.Transaction(ctx, func(r Repository) error {
		existing, err := r.ExistingEmails(ctx, tenantID, addrs)
		if err != nil {
			return err
		}

		skip := make(map[string]bool, len(existing))
		for _, e := range existing {
			skip[e] = true
		}

		for _, addr := range addrs {
			if skip[addr] {
				continue
			}
			skip[addr] = true

			token, err := s.issuer.Sign(addr)
			if err != nil {
				return err
			}

			created = append(created, &Invite{
				ID:             uuid.New(),
				TenantID:       tenantID,
				OrganizationID: org.ID,
				Email:          addr,
				Token:          token,
				Status:         StatusInvited,
				Kind:           req.Kind,
				RoleID:         role.ID,
				InvitedByID:    &inviter.ID,
				ExpireDate:     expireDate,
				ActionDate:     req.ActionDate,
				Projects:       projects,
				Departments:    departments,
				Teams:          teams,
				Contacts:       contacts,
			})
		}

		return r.CreateAll(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	ignored := len(req.Emails) - len(created)
	if s.metrics != nil {
		s.metrics.InvitesIssuedTotal.WithLabelValues(string(req.Kind)).Add(float64(len(created)))
		s.metrics.InvitesIgnoredTotal.Add(float64(ignored))
	}

	for _, inv := range created {
		if sendErr := s.sendInviteEmail(ctx, inv, org, inviterName(inviter), role.Name); sendErr != nil {
			s.logger.Warn("invite email not queued",
				zap.String("invite_id", inv.ID.String()),
				zap.Error(sendErr),
			)
		}
	}

	items := make([]Invite, len(created))
	for i, inv := range created {
		items[i] = *inv
	}
	return &BulkResult{Items: items, Total: len(items), Ignored: ignored}, nil
}

// Resend reissues an invite: a fresh token and expiry are written, the
// status is restored to INVITED, and the email is queued again. A queueing
// failure is reported in the result rather than as an error: the reissued
// invite stands either way.
func (s *Service) Resend(ctx context.Context, tenantID uuid.UUID, req *ResendRequest) (*ResendResult, error) {
	inv, err := s.repo.GetByID(ctx, tenantID, req.InviteID)
	if err != nil {
		return nil, err
	}

	if !s.throttle.Allow(ctx, inv.ID) {
		return nil, ErrResendThrottled
	}

	org, err := s.orgs.GetByID(ctx, tenantID, inv.OrganizationID)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Sign(inv.Email)
	if err != nil {
		return nil, err
	}
	expire := s.expireDate(org, req.ExpiryDays, time.Now())
	if err := s.repo.Refresh(ctx, inv.ID, token, expire); err != nil {
		return nil, err
	}
	inv.Token = token
	inv.Status = StatusInvited
	inv.ExpireDate = expire

	var name string
	if inv.InvitedByID != nil {
		if inviter, err := s.users.GetByIDWithRole(ctx, tenantID, *inv.InvitedByID); err == nil {
			name = inviterName(inviter)
		}
	}

	result := &ResendResult{InviteID: inv.ID, Email: inv.Email}
	if sendErr := s.sendInviteEmail(ctx, inv, org, name, inv.Role.Name); sendErr != nil {
		result.SendError = sendErr.Error()
	}

	if s.metrics != nil {
		s.metrics.InvitesResentTotal.Inc()
	}
	return result, nil
}

// CreateContactInvite invites an organization contact to collaborate. The
// invite is issued under the VIEWER role and expires per the organization's
// policy only; there is no per-request override.
func (s *Service) CreateContactInvite(ctx context.Context, tenantID, inviterID uuid.UUID, req *ContactInviteRequest) (*Invite, error) {
	org, err := s.orgs.GetByID(ctx, tenantID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.orgs.ContactsByIDs(ctx, org.ID, []uuid.UUID{req.OrganizationContactID})
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, organization.ErrOrganizationNotFound
	}
	contact := contacts[0]
	if contact.PrimaryEmail == "" {
		return nil, fmt.Errorf("organization contact %s has no email", contact.ID)
	}

	role, err := s.tenants.GetRoleByName(ctx, tenantID, tenant.RoleViewer)
	if err != nil {
		return nil, err
	}

	inviter, err := s.users.GetByIDWithRole(ctx, tenantID, inviterID)
	if err != nil {
		return nil, err
	}

	addr := strings.ToLower(strings.TrimSpace(contact.PrimaryEmail))
	token, err := s.issuer.Sign(addr)
	if err != nil {
		return nil, err
	}

	inv := &Invite{
		ID:                    uuid.New(),
		TenantID:              tenantID,
		OrganizationID:        org.ID,
		Email:                 addr,
		Token:                 token,
		Status:                StatusInvited,
		Kind:                  KindOrganizationContact,
		RoleID:                role.ID,
		InvitedByID:           &inviter.ID,
		ExpireDate:            s.expireDate(org, nil, time.Now()),
		OrganizationContactID: &contact.ID,
	}
	if err := s.repo.CreateAll(ctx, []*Invite{inv}); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.InvitesIssuedTotal.WithLabelValues(string(KindOrganizationContact)).Inc()
	}

	if sendErr := s.sendInviteEmail(ctx, inv, org, inviterName(inviter), role.Name); sendErr != nil {
		s.logger.Warn("contact invite email not queued",
			zap.String("invite_id", inv.ID.String()),
			zap.Error(sendErr),
		)
	}
	return inv, nil
}

// Validate checks an email/token pair against the stored invites. Every
// failure mode returns ErrInvalidInvite so the endpoint cannot be used to
// probe which addresses were invited.
func (s *Service) Validate(ctx context.Context, req *ValidateRequest) (*ValidatedInvite, error) {
	inv, err := s.repo.FindLive(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Token, time.Now())
	if err != nil {
		s.logger.Debug("invite validation failed", zap.Error(err))
		return nil, ErrInvalidInvite
	}

	out := &ValidatedInvite{
		ID:             inv.ID,
		Email:          inv.Email,
		OrganizationID: inv.OrganizationID,
		RoleName:       inv.Role.Name,
		Kind:           inv.Kind,
		ExpireDate:     inv.ExpireDate,
	}
	if inv.Organization != nil {
		out.OrganizationName = inv.Organization.Name
	}
	return out, nil
}

// List returns a page of the tenant's invites.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, req *ListRequest) (*ListResponse, error) {
	q := ListQuery{
		OrganizationID:   req.OrganizationID,
		IncludeEmployees: req.WithEmployees,
		Page:             req.Pagination,
	}
	for _, r := range req.Roles {
		q.Roles = append(q.Roles, tenant.RoleName(r))
	}

	items, total, err := s.repo.List(ctx, tenantID, q)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return &ListResponse{Items: items, Page: req.Pagination.Info(total)}, nil
}

// expireDate resolves the invite expiry: request override first, then the
// organization policy, then the global default. A non-positive period at
// any tier means the invite never expires.
func (s *Service) expireDate(org *organization.Organization, override *int, now time.Time) *time.Time {
	days := s.opts.DefaultExpiryDays
	switch {
	case override != nil:
		days = *override
	case org.InviteExpiryPeriod != nil:
		days = *org.InviteExpiryPeriod
	}
	if days <= 0 {
		return nil
	}
	d := now.AddDate(0, 0, days)
	return &d
}

func (s *Service) sendInviteEmail(ctx context.Context, inv *Invite, org *organization.Organization, inviter string, roleName tenant.RoleName) error {
	payload := email.InvitePayload{
		To:               inv.Email,
		InviterName:      inviter,
		OrganizationName: org.Name,
		RoleName:         string(roleName),
		AcceptURL:        s.acceptURL(inv.Email, inv.Token),
		ExpireDate:       inv.ExpireDate,
		LanguageCode:     requestctx.Language(ctx),
	}

	switch inv.Kind {
	case KindEmployee:
		return s.mailer.InviteEmployee(ctx, payload)
	case KindOrganizationContact:
		return s.mailer.InviteOrganizationContact(ctx, payload)
	default:
		return s.mailer.InviteUser(ctx, payload)
	}
}

func (s *Service) acceptURL(addr, token string) string {
	// The web client uses hash routing; the accept page lives behind "#".
	return fmt.Sprintf("%s/#/auth/accept-invite?email=%s&token=%s",
		strings.TrimRight(s.opts.ClientBaseURL, "/"),
		url.QueryEscape(addr),
		url.QueryEscape(token),
	)
}

func inviterName(u *user.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
