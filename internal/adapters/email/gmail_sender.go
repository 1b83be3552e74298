package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// GmailSender delivers mail through the company's linked Gmail account
// using the stored OAuth refresh token, so customers see the email coming
// from the company's own address.
type GmailSender struct {
	oauthConfig *oauth2.Config
}

// NewGmailSender builds the sender from the platform's Google OAuth app
// credentials.
func NewGmailSender(clientID, clientSecret, redirectURL string) *GmailSender {
	return &GmailSender{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gmail.GmailSendScope},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.EmailSender = (*GmailSender)(nil)

// CanSend reports whether the company has a usable Gmail link.
func (s *GmailSender) CanSend(company *domain.Company) bool {
	return company != nil && company.GoogleRefreshToken != ""
}

func (s *GmailSender) Send(ctx context.Context, company *domain.Company, msg portssvc.EmailMessage) error {
	if !s.CanSend(company) {
		return fmt.Errorf("company %s has no linked Google account", company.CompanyID)
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: company.GoogleRefreshToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	raw, err := buildMIMEMessage(company.GoogleEmail, company.Name, msg)
	if err != nil {
		return err
	}

	_, err = svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send gmail message: %w", err)
	}
	return nil
}

// buildMIMEMessage assembles an RFC 2822 message with optional attachment.
func buildMIMEMessage(fromAddr, fromName string, msg portssvc.EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", fromName, fromAddr)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
	bodyPart, err := mw.CreatePart(bodyHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, fmt.Errorf("failed to write body part: %w", err)
	}

	if len(msg.Attachment) > 0 {
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", "application/pdf")
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", msg.AttachmentName))
		attPart, err := mw.CreatePart(attHeader)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		if _, err := attPart.Write([]byte(encoded)); err != nil {
			return nil, fmt.Errorf("failed to write attachment part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize message: %w", err)
	}
	return buf.Bytes(), nil
}
