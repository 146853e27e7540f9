package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/notify"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
	"go.uber.org/zap"
)

// DispatchService mints signing links and optionally delivers them.
type DispatchService struct {
	Repos   *repository.Repos
	signing *SigningService
	email   Notifier
	sms     Notifier
	log     *zap.Logger
}

func NewDispatchService(repos *repository.Repos, signing *SigningService, email, sms Notifier, log *zap.Logger) *DispatchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DispatchService{
		Repos:   repos,
		signing: signing,
		email:   email,
		sms:     sms,
		log:     log,
	}
}

// Send mints a token for the form. Delivery failures are reported in the
// result; the link itself is always returned once minted.
func (s *DispatchService) Send(ctx context.Context, actor types.Actor, formID string, input form.SendFormDTO) (form.SendFormResult, error) {
	f, err := loadOwnedForm(s.Repos, actor.UserID, formID)
	if err != nil {
		return form.SendFormResult{}, err
	}
	if f.IsSigned() {
		return form.SendFormResult{}, ErrMintSigned
	}

	var (
		sender    Notifier
		recipient string
	)
	switch input.Method {
	case form.ChannelLink:
	case form.ChannelEmail:
		if input.Email == nil || strings.TrimSpace(*input.Email) == "" {
			return form.SendFormResult{}, apperr.Validation("email is required for email dispatch")
		}
		sender, recipient = s.email, strings.TrimSpace(*input.Email)
	case form.ChannelSMS:
		if input.Phone == nil || strings.TrimSpace(*input.Phone) == "" {
			return form.SendFormResult{}, apperr.Validation("phone is required for sms dispatch")
		}
		if !form.IsIsraeliPhone(strings.TrimSpace(*input.Phone)) {
			return form.SendFormResult{}, apperr.Validation("invalid phone number")
		}
		sender, recipient = s.sms, strings.TrimSpace(*input.Phone)
	default:
		return form.SendFormResult{}, apperr.Validation(fmt.Sprintf("unknown dispatch method %q", input.Method))
	}

	minted, err := s.signing.Mint(f.ID)
	if err != nil {
		return form.SendFormResult{}, err
	}
	result := form.SendFormResult{
		SigningURL: config.SigningURL(minted.Token),
		ExpiresAt:  minted.ExpiresAt,
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionMint,
		ResourceType: "form",
		ResourceID:   f.ID,
		After:        map[string]any{"expires_at": minted.ExpiresAt, "method": input.Method},
	})

	if input.Method == form.ChannelLink {
		return result, nil
	}

	if err := s.deliver(ctx, sender, f, recipient, result.SigningURL); err != nil {
		s.log.Warn("signing link dispatch failed",
			zap.String("form_id", f.ID),
			zap.String("method", string(input.Method)),
			zap.Error(err))
		result.DispatchError = err.Error()
		return result, nil
	}
	result.Dispatched = true

	if _, err := s.Repos.Form.MarkDispatched(f.ID, input.Method, s.signing.now()); err != nil {
		s.log.Warn("record dispatch failed", zap.String("form_id", f.ID), zap.Error(err))
	}
	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionDispatch,
		ResourceType: "form",
		ResourceID:   f.ID,
		After:        map[string]any{"method": input.Method, "recipient": recipient},
	})
	return result, nil
}

func (s *DispatchService) deliver(ctx context.Context, sender Notifier, f form.Form, to, url string) error {
	if sender == nil {
		return notify.ErrNotConfigured
	}
	return sender.SendSigningRequest(ctx, notify.SigningRequest{
		To:          to,
		ContactName: f.Project.ContactName(),
		ProjectName: f.Project.Name,
		FormType:    f.Type,
		SigningURL:  url,
		ValidFor:    s.signing.tokenTTL,
	})
}
