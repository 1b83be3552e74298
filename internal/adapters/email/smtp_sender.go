package email

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// SMTPSender delivers mail through a configured SMTP relay. Used when the
// company has not linked a Google account.
type SMTPSender struct {
	dialer   *gomail.Dialer
	fromAddr string
}

// NewSMTPSender builds the sender from SMTP relay settings.
func NewSMTPSender(host string, port int, username, password, fromAddr string) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(host, port, username, password),
		fromAddr: fromAddr,
	}
}

var _ portssvc.EmailSender = (*SMTPSender)(nil)

// Configured reports whether the relay settings are usable.
func (s *SMTPSender) Configured() bool {
	return s.dialer.Host != ""
}

func (s *SMTPSender) Send(ctx context.Context, company *domain.Company, msg portssvc.EmailMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddr, company.Name)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}
	if len(msg.Attachment) > 0 {
		m.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.Attachment)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send smtp message: %w", err)
	}
	return nil
}
