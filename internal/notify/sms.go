package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender sends signing invitations through Twilio.
type SMSSender struct {
	api  messageAPI
	from string
}

// NewSMSSender returns a sender that reports ErrNotConfigured unless all
// credentials are present.
func NewSMSSender(accountSID, authToken, from string) *SMSSender {
	s := &SMSSender{from: from}
	if accountSID != "" && authToken != "" && from != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		s.api = client.Api
	}
	return s
}

func (s *SMSSender) SendSigningRequest(ctx context.Context, req SigningRequest) error {
	if s.api == nil {
		return fmt.Errorf("sms: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(FormatIsraeliPhone(req.To))
	params.SetFrom(s.from)
	params.SetBody(SigningSMSBody(req))

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if msg != nil && msg.Sid != nil {
		zap.L().Info("signing sms sent", zap.String("sid", *msg.Sid))
	}
	return nil
}
