package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger.Named("mail")}
}

func (mailer *LogMailer) Send(_ context.Context, message Message) error {
	mailer.logger.Info("mail delivery disabled, logging message",
		zap.String("to", message.To),
		zap.String("subject", message.Subject),
		zap.String("body", message.Body),
	)
	return nil
}
