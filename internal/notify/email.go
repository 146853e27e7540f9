package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type emailAPI interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailSender sends signing invitations through Resend.
type EmailSender struct {
	api  emailAPI
	from string
}

// NewEmailSender returns a sender that reports ErrNotConfigured when apiKey is empty.
func NewEmailSender(apiKey, from string) *EmailSender {
	s := &EmailSender{from: from}
	if apiKey != "" {
		s.api = resend.NewClient(apiKey).Emails
	}
	return s
}

func (s *EmailSender) SendSigningRequest(ctx context.Context, req SigningRequest) error {
	if s.api == nil {
		return fmt.Errorf("email: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := RenderSigningEmail(req)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	sent, err := s.api.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{req.To},
		Subject: SigningEmailSubject(req),
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	zap.L().Info("signing email sent", zap.String("message_id", sent.Id))
	return nil
}
