package email

import (
	"context"
	"log/slog"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// LogSender logs outbound mail instead of delivering it. It is the
// development fallback when neither Gmail nor SMTP is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ portssvc.EmailSender = (*LogSender)(nil)

func (s *LogSender) Send(ctx context.Context, company *domain.Company, msg portssvc.EmailMessage) error {
	s.logger.InfoContext(ctx, "email delivery skipped (no sender configured)",
		slog.String("company_id", company.CompanyID),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachment_bytes", len(msg.Attachment)),
	)
	return nil
}
