package notification

import (
	"context"

	"go.uber.org/zap"

	appordering "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// LogSender writes notifications to the application log instead of
// delivering them. Used when notifications are disabled in config.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and reports success.
func (s *LogSender) Send(ctx context.Context, subject, recipient, message string) error {
	s.logger.Info("notification (delivery disabled)",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("message", message))
	return nil
}

// NewSender returns a SendGrid-backed sender when notifications are enabled,
// falling back to log-only delivery otherwise.
func NewSender(cfg config.NotificationConfig, logger *zap.Logger) (appordering.NotificationSender, error) {
	if !cfg.Enabled {
		return NewLogSender(logger), nil
	}
	return NewSendGridSender(cfg, logger)
}

var _ appordering.NotificationSender = (*LogSender)(nil)
