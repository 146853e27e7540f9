package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var sampleRequest = SigningRequest{
	To:          "client@example.com",
	ContactName: "Dana Cohen",
	ProjectName: "Kitchen",
	FormType:    form.TypeWorkApproval,
	SigningURL:  "https://app.example.com/sign/abc",
	ValidFor:    48 * time.Hour,
}

type fakeEmailAPI struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeEmailAPI) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

type fakeMessageAPI struct {
	got *twilioApi.CreateMessageParams
	err error
}

func (f *fakeMessageAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM1"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSigningEmailContent(t *testing.T) {
	assert.Equal(t, "הזמנת עבודה - Kitchen | דרוש חתימתך", SigningEmailSubject(sampleRequest))

	html, err := RenderSigningEmail(sampleRequest)
	require.NoError(t, err)
	assert.Contains(t, html, `href="https://app.example.com/sign/abc"`)
	assert.Contains(t, html, "שלום Dana Cohen,")
	assert.Contains(t, html, "תקף ל-48 שעות")

	anon := sampleRequest
	anon.ContactName = ""
	html, err = RenderSigningEmail(anon)
	require.NoError(t, err)
	assert.Contains(t, html, "שלום,")
}

func TestSigningEmailEscapesProjectName(t *testing.T) {
	req := sampleRequest
	req.ProjectName = `<script>alert(1)</script>`
	html, err := RenderSigningEmail(req)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSigningSMSBody(t *testing.T) {
	body := SigningSMSBody(sampleRequest)
	assert.Equal(t, "ProjectSign: מסמך הזמנת עבודה עבור \"Kitchen\" ממתין לחתימתך.\n\nלחתימה לחץ כאן:\nhttps://app.example.com/sign/abc", body)
}

func TestFormatIsraeliPhone(t *testing.T) {
	tests := map[string]string{
		"050-123-4567":    "+972501234567",
		"972501234567":    "+972501234567",
		"+972 50 1234567": "+972501234567",
		"501234567":       "+972501234567",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, FormatIsraeliPhone(in))
		})
	}
}

func TestEmailSender(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		err := NewEmailSender("", "from@example.com").SendSigningRequest(context.Background(), sampleRequest)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
	t.Run("sends", func(t *testing.T) {
		api := &fakeEmailAPI{}
		s := &EmailSender{api: api, from: "ProjectSign <noreply@projectsign.co.il>"}
		require.NoError(t, s.SendSigningRequest(context.Background(), sampleRequest))
		assert.Equal(t, []string{"client@example.com"}, api.got.To)
		assert.Equal(t, "ProjectSign <noreply@projectsign.co.il>", api.got.From)
		assert.Contains(t, api.got.Html, "https://app.example.com/sign/abc")
	})
	t.Run("provider error", func(t *testing.T) {
		s := &EmailSender{api: &fakeEmailAPI{err: errors.New("rate limited")}}
		err := s.SendSigningRequest(context.Background(), sampleRequest)
		assert.ErrorContains(t, err, "rate limited")
	})
}

func TestSMSSender(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		err := NewSMSSender("sid", "", "+15550000").SendSigningRequest(context.Background(), sampleRequest)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
	t.Run("sends", func(t *testing.T) {
		api := &fakeMessageAPI{}
		s := &SMSSender{api: api, from: "+15550000"}
		req := sampleRequest
		req.To = "050-1234567"
		require.NoError(t, s.SendSigningRequest(context.Background(), req))
		require.NotNil(t, api.got.To)
		assert.Equal(t, "+972501234567", *api.got.To)
		assert.Equal(t, "+15550000", *api.got.From)
		assert.Contains(t, *api.got.Body, "https://app.example.com/sign/abc")
	})
}
