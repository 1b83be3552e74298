package email

import (
	"context"
	"log/slog"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// ChainSender picks the best available delivery path per company: the
// company's linked Gmail account first, then the platform SMTP relay,
// then the logging fallback. A Gmail failure falls through to SMTP so a
// revoked token does not silently drop customer mail.
type ChainSender struct {
	gmail  *GmailSender
	smtp   *SMTPSender
	logger *slog.Logger
}

func NewChainSender(gmail *GmailSender, smtp *SMTPSender, logger *slog.Logger) *ChainSender {
	return &ChainSender{gmail: gmail, smtp: smtp, logger: logger}
}

var _ portssvc.EmailSender = (*ChainSender)(nil)

func (s *ChainSender) Send(ctx context.Context, company *domain.Company, msg portssvc.EmailMessage) error {
	if s.gmail != nil && s.gmail.CanSend(company) {
		err := s.gmail.Send(ctx, company, msg)
		if err == nil {
			return nil
		}
		s.logger.WarnContext(ctx, "gmail delivery failed, falling back to smtp",
			slog.String("company_id", company.CompanyID), slog.String("error", err.Error()))
	}
	if s.smtp != nil && s.smtp.Configured() {
		return s.smtp.Send(ctx, company, msg)
	}
	return NewLogSender(s.logger).Send(ctx, company, msg)
}
