// Package mail sends transactional email through Resend.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/infrastructure/config"
)

// Message is a single outbound email
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers transactional email. Send returns the provider's
// message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

var (
	ErrMailDisabled     = errors.New("mail delivery is disabled")
	ErrMissingRecipient = errors.New("recipient address is required")
)

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer creates a mailer from configuration
func NewResendMailer(cfg *config.MailConfig, logger *zap.Logger) (*ResendMailer, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("mail API key is required")
	}
	if cfg.FromAddress == "" {
		return nil, errors.New("mail from address is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}

	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		from:   from,
		logger: logger,
	}, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", ErrMissingRecipient
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.logger.Error("Failed to send email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("to", msg.To),
		zap.String("message_id", sent.Id))
	return sent.Id, nil
}

// NoopMailer records messages without delivering them. Used when mail is
// disabled and in tests.
type NoopMailer struct {
	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*NoopMailer)(nil)

func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

func (m *NoopMailer) Send(ctx context.Context, msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", ErrMissingRecipient
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return fmt.Sprintf("noop-%d", len(m.sent)), nil
}

// Sent returns a copy of recorded messages. Test helper.
func (m *NoopMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// NewMailer returns the configured mailer, falling back to the noop
// implementation when mail is disabled.
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) (Mailer, error) {
	if cfg == nil || !cfg.Enabled {
		return NewNoopMailer(), nil
	}
	return NewResendMailer(cfg, logger)
}
