package email

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"time"

	"go.uber.org/zap"
)

// InvitePayload carries everything an invite email needs.
type InvitePayload struct {
	To               string
	InviterName      string
	OrganizationName string
	RoleName         string
	AcceptURL        string
	ExpireDate       *time.Time
	LanguageCode     string
}

// AcceptedPayload notifies administrators that an invite was accepted.
type AcceptedPayload struct {
	AdminEmails      []string
	JoinedEmail      string
	OrganizationName string
}

// ErrQueueFull is returned when the dispatch queue rejected a message.
var ErrQueueFull = errors.New("email queue full")

// Service renders and queues invitation emails. Delivery is asynchronous;
// the returned error only covers rendering and queueing.
type Service interface {
	InviteUser(ctx context.Context, p InvitePayload) error
	InviteEmployee(ctx context.Context, p InvitePayload) error
	InviteOrganizationContact(ctx context.Context, p InvitePayload) error
	InviteAccepted(ctx context.Context, p AcceptedPayload) error
}

type inviteTemplate struct {
	subject string
	body    *template.Template
}

// service implements Service with an HTML template per message kind.
type service struct {
	templates  map[string]inviteTemplate
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewService creates the email service. Panics on a malformed built-in
// template, which is a programming error.
func NewService(dispatcher *Dispatcher, logger *zap.Logger) Service {
	parse := func(name, text string) *template.Template {
		return template.Must(template.New(name).Parse(text))
	}

	return &service{
		templates: map[string]inviteTemplate{
			TemplateInviteUser: {
				subject: "You've been invited",
				body:    parse(TemplateInviteUser, inviteUserTemplate),
			},
			TemplateInviteEmployee: {
				subject: "Join your new team",
				body:    parse(TemplateInviteEmployee, inviteEmployeeTemplate),
			},
			TemplateInviteOrgContact: {
				subject: "Invitation to collaborate",
				body:    parse(TemplateInviteOrgContact, inviteOrgContactTemplate),
			},
			TemplateInviteAcceptedAdmin: {
				subject: "An invitation was accepted",
				body:    parse(TemplateInviteAcceptedAdmin, inviteAcceptedAdminTemplate),
			},
		},
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// InviteUser queues a user invitation email.
func (s *service) InviteUser(ctx context.Context, p InvitePayload) error {
	return s.queueInvite(TemplateInviteUser, p)
}

// InviteEmployee queues an employee invitation email.
func (s *service) InviteEmployee(ctx context.Context, p InvitePayload) error {
	return s.queueInvite(TemplateInviteEmployee, p)
}

// InviteOrganizationContact queues an organization-contact invitation email.
func (s *service) InviteOrganizationContact(ctx context.Context, p InvitePayload) error {
	return s.queueInvite(TemplateInviteOrgContact, p)
}

// InviteAccepted queues a notification to each tenant administrator.
func (s *service) InviteAccepted(ctx context.Context, p AcceptedPayload) error {
	tmpl := s.templates[TemplateInviteAcceptedAdmin]
	body, err := s.render(tmpl.body, map[string]string{
		"JoinedEmail":      p.JoinedEmail,
		"OrganizationName": p.OrganizationName,
	})
	if err != nil {
		s.logger.Error("failed to render email", zap.String("template", TemplateInviteAcceptedAdmin), zap.Error(err))
		return err
	}

	var queueErr error
	for _, admin := range p.AdminEmails {
		ok := s.dispatcher.Enqueue(Message{
			To:       admin,
			Subject:  tmpl.subject,
			Body:     body,
			Template: TemplateInviteAcceptedAdmin,
		})
		if !ok {
			queueErr = ErrQueueFull
		}
	}
	return queueErr
}

func (s *service) queueInvite(name string, p InvitePayload) error {
	tmpl := s.templates[name]

	data := map[string]string{
		"InviterName":      p.InviterName,
		"OrganizationName": p.OrganizationName,
		"RoleName":         p.RoleName,
		"AcceptURL":        p.AcceptURL,
	}
	if p.ExpireDate != nil {
		data["ExpiresAt"] = p.ExpireDate.Format("January 2, 2006")
	}

	body, err := s.render(tmpl.body, data)
	if err != nil {
		s.logger.Error("failed to render email", zap.String("template", name), zap.Error(err))
		return err
	}

	ok := s.dispatcher.Enqueue(Message{
		To:       p.To,
		Subject:  tmpl.subject,
		Body:     body,
		Template: name,
	})
	if !ok {
		return ErrQueueFull
	}
	return nil
}

func (s *service) render(t *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
