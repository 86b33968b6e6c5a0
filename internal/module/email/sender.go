package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To       string
	Subject  string
	Body     string
	Template string
}

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds SMTP delivery configuration.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPSender delivers messages via SMTP. Delivery runs behind a circuit
// breaker so a dead relay fails fast instead of stalling the dispatch
// workers.
type SMTPSender struct {
	config  *SMTPConfig
	breaker *gobreaker.CircuitBreaker[any]
	logger  *zap.Logger
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(config *SMTPConfig, logger *zap.Logger) *SMTPSender {
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &SMTPSender{
		config:  config,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Send delivers a message through the configured relay.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.send(msg)
	})
	if err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (s *SMTPSender) send(msg Message) error {
	from := s.config.FromAddress
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, msg.To, msg.Subject, msg.Body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromAddress, []string{msg.To}, []byte(raw)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NoOpSender logs messages instead of delivering them. Used in development
// and tests.
type NoOpSender struct {
	logger *zap.Logger
}

// NewNoOpSender creates a no-op sender.
func NewNoOpSender(logger *zap.Logger) *NoOpSender {
	return &NoOpSender{logger: logger}
}

// Send logs but doesn't deliver.
func (s *NoOpSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email (no-op)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template),
	)
	return nil
}
