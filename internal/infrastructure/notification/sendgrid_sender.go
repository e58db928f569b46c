package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	appordering "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// SendGridSender delivers order notifications over the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewSendGridSender creates a SendGridSender from the notification config.
func NewSendGridSender(cfg config.NotificationConfig, logger *zap.Logger) (*SendGridSender, error) {
	if cfg.SendGridKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.SendGridKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

// Send delivers a plain-text message to the recipient.
func (s *SendGridSender) Send(ctx context.Context, subject, recipient, message string) error {
	if recipient == "" {
		return fmt.Errorf("recipient address is empty")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", recipient)
	email := mail.NewSingleEmail(from, subject, to, message, fmt.Sprintf("<pre>%s</pre>", message))

	response, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	s.logger.Debug("notification sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.Int("status", response.StatusCode))
	return nil
}

var _ appordering.NotificationSender = (*SendGridSender)(nil)
