package invite

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teampulse/server/internal/module/auth"
	"github.com/teampulse/server/internal/module/email"
	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/user"
	"github.com/teampulse/server/internal/utils/metrics"
)

// Registrar provisions accounts for accepted invitees.
type Registrar interface {
	Register(ctx context.Context, input auth.RegisterInput) (*user.User, error)
}

// AcceptService completes invites. Acceptance is unauthenticated: the
// email/token pair is the credential, and the tenant is resolved from the
// invite's organization, never from the caller.
type AcceptService struct {
	repo      Repository
	orgs      organization.Repository
	users     user.Repository
	registrar Registrar
	mailer    email.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAcceptService creates a new acceptance service. metrics may be nil.
func NewAcceptService(
	repo Repository,
	orgs organization.Repository,
	users user.Repository,
	registrar Registrar,
	mailer email.Service,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AcceptService {
	return &AcceptService{
		repo:      repo,
		orgs:      orgs,
		users:     users,
		registrar: registrar,
		mailer:    mailer,
		metrics:   m,
		logger:    logger,
	}
}

// Accept validates the invite, registers the account and marks the invite
// ACCEPTED. Registration failure leaves the invite INVITED so the invitee
// can retry. A failure flipping the status after a successful registration
// is logged and swallowed: the account exists, and failing the request
// would only push the invitee into a confusing second attempt.
func (s *AcceptService) Accept(ctx context.Context, req *AcceptRequest) (*user.User, error) {
	addr := strings.ToLower(strings.TrimSpace(req.Email))

	inv, err := s.repo.FindLive(ctx, addr, req.Token, time.Now())
	if err != nil {
		s.logger.Debug("invite acceptance rejected", zap.Error(err))
		return nil, ErrInvalidInvite
	}

	org, err := s.orgs.GetWithTenant(ctx, inv.OrganizationID)
	if err != nil {
		return nil, err
	}

	registered, err := s.registrar.Register(ctx, auth.RegisterInput{
		TenantID:       org.TenantID,
		OrganizationID: org.ID,
		RoleID:         inv.RoleID,
		Email:          inv.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		CreateEmployee: inv.Kind == KindEmployee,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.SetStatus(ctx, inv.ID, StatusAccepted, &now); err != nil {
		s.logger.Error("failed to mark invite accepted",
			zap.String("invite_id", inv.ID.String()),
			zap.String("user_id", registered.ID.String()),
			zap.Error(err),
		)
	}

	if s.metrics != nil {
		s.metrics.InvitesAcceptedTotal.WithLabelValues(string(inv.Kind)).Inc()
	}

	s.notifyAdmins(ctx, org, inv.Email)
	return registered, nil
}

// notifyAdmins tells the tenant's super admins someone joined. Best-effort.
func (s *AcceptService) notifyAdmins(ctx context.Context, org *organization.Organization, joinedEmail string) {
	admins, err := s.users.AdminEmails(ctx, org.TenantID)
	if err != nil {
		s.logger.Warn("failed to load admin emails", zap.Error(err))
		return
	}
	if len(admins) == 0 {
		return
	}

	if err := s.mailer.InviteAccepted(ctx, email.AcceptedPayload{
		AdminEmails:      admins,
		JoinedEmail:      joinedEmail,
		OrganizationName: org.Name,
	}); err != nil {
		s.logger.Warn("failed to queue acceptance notification", zap.Error(err))
	}
}
