package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/signing"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/canonhash"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultTokenTTL       = 48 * time.Hour
	defaultReservationTTL = 2 * time.Minute
)

// SigningService owns the signing tokens and is the only writer of a form's
// signature columns.
type SigningService struct {
	Repos *repository.Repos

	blobs          BlobStore
	events         *EventHub
	log            *zap.Logger
	now            func() time.Time
	tokenTTL       time.Duration
	reservationTTL time.Duration
}

func NewSigningService(repos *repository.Repos, blobs BlobStore, events *EventHub, log *zap.Logger) *SigningService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SigningService{
		Repos:          repos,
		blobs:          blobs,
		events:         events,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
		tokenTTL:       config.SigningTokenTTL,
		reservationTTL: config.SignReservationTTL,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = defaultTokenTTL
	}
	if s.reservationTTL <= 0 {
		s.reservationTTL = defaultReservationTTL
	}
	return s
}

// Mint creates a fresh token for formID. Signed forms are refused.
func (s *SigningService) Mint(formID string) (signing.Minted, error) {
	f, err := s.Repos.Form.GetFormByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return signing.Minted{}, ErrFormNotFound
		}
		return signing.Minted{}, err
	}
	if f.IsSigned() {
		return signing.Minted{}, ErrMintSigned
	}

	raw := uuid.NewString()
	t := &signing.Token{
		FormID:    f.ID,
		TokenHash: signing.HashToken(raw),
		ExpiresAt: s.now().Add(s.tokenTTL),
	}
	if err := s.Repos.Token.CreateToken(t); err != nil {
		return signing.Minted{}, fmt.Errorf("create token: %w", err)
	}
	return signing.Minted{Token: raw, ExpiresAt: t.ExpiresAt}, nil
}

// lookup resolves a raw token to a usable token row with its form loaded.
// Every failure collapses to ErrInvalidToken.
func (s *SigningService) lookup(raw string) (signing.Token, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return signing.Token{}, ErrInvalidToken
	}
	t, err := s.Repos.Token.GetTokenByHash(signing.HashToken(raw))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("token lookup failed", zap.Error(err))
		}
		return signing.Token{}, ErrInvalidToken
	}
	if !t.Usable(s.now()) || t.Form.IsSigned() {
		return signing.Token{}, ErrInvalidToken
	}
	return t, nil
}

// Validate returns what the signer may see. It never mutates state.
func (s *SigningService) Validate(raw string) (signing.FormSnapshot, error) {
	t, err := s.lookup(raw)
	if err != nil {
		return signing.FormSnapshot{}, err
	}
	return signing.FormSnapshot{
		ID:          t.Form.ID,
		Type:        t.Form.Type,
		Data:        t.Form.Data,
		Version:     t.Form.Version,
		ProjectName: t.Form.Project.Name,
		ContactName: t.Form.Project.ContactName(),
	}, nil
}

// SubmitSignature signs the token's form. The token is reserved before the
// image upload; consumption and the form update commit in one transaction.
func (s *SigningService) SubmitSignature(ctx context.Context, sub signing.Submission) error {
	signerName, err := ValidateSignerName(sub.SignerName)
	if err != nil {
		return err
	}
	image, err := DecodeSignatureImage(sub.SignatureData)
	if err != nil {
		return err
	}

	t, err := s.lookup(sub.Token)
	if err != nil {
		return err
	}
	f := t.Form
	if sub.Version != nil && *sub.Version != f.Version {
		return ErrDocumentChanged
	}

	data, err := mergeAmendments(f, sub.AmendedFields)
	if err != nil {
		return err
	}
	hash, err := canonhash.SumJSON(data)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash document", err)
	}

	now := s.now()
	reservation := uuid.NewString()
	n, err := s.Repos.Token.Reserve(t.TokenHash, reservation, now, now.Add(s.reservationTTL))
	if err != nil {
		return fmt.Errorf("reserve token: %w", err)
	}
	if n == 0 {
		return ErrInvalidToken
	}
	cleanupCtx := context.WithoutCancel(ctx)
	release := func() {
		if err := s.Repos.Token.Release(t.ID, reservation); err != nil {
			s.log.Warn("release token reservation failed", zap.String("token_id", t.ID), zap.Error(err))
		}
	}

	key := fmt.Sprintf("%s/%d-%s.png", f.ID, now.UnixMilli(), uuid.NewString()[:8])
	url, err := s.blobs.Put(ctx, key, "image/png", image)
	if err != nil {
		release()
		s.log.Error("signature upload failed", zap.String("form_id", f.ID), zap.Error(err))
		return apperr.Wrap(apperr.KindDependency, "שמירת החתימה נכשלה, נא לנסות שוב", err)
	}

	signedAt := s.now()
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		n, err := tx.Token.Consume(t.ID, signing.Consumption{
			ReservationID: reservation,
			At:            signedAt,
			IP:            sub.IP,
			UserAgent:     sub.UserAgent,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInvalidToken
		}

		n, err = tx.Form.MarkSigned(f.ID, f.Version, form.Signature{
			Data:      data,
			URL:       url,
			Path:      key,
			Hash:      hash,
			SignedAt:  signedAt,
			SignedBy:  signerName,
			IP:        sub.IP,
			UserAgent: sub.UserAgent,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			current, err := tx.Form.GetFormByID(f.ID)
			if err != nil || current.IsSigned() {
				return ErrInvalidToken
			}
			return ErrDocumentChanged
		}

		_, err = tx.Token.DeleteUnusedByForm(f.ID, t.ID)
		return err
	})
	if err != nil {
		if delErr := s.blobs.Delete(cleanupCtx, key); delErr != nil {
			s.log.Warn("orphaned signature cleanup failed", zap.String("key", key), zap.Error(delErr))
		}
		release()
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrDocumentChanged) {
			return err
		}
		s.log.Error("sign transaction failed", zap.String("form_id", f.ID), zap.Error(err))
		return apperr.Wrap(apperr.KindInternal, "failed to record signature", err)
	}

	s.log.Info("form signed",
		zap.String("form_id", f.ID),
		zap.String("token_id", t.ID),
		zap.String("hash", hash))

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        types.Actor{IP: sub.IP, UserAgent: sub.UserAgent},
		Action:       audit.ActionSign,
		ResourceType: "form",
		ResourceID:   f.ID,
		After: map[string]any{
			"signed_by":      signerName,
			"signature_hash": hash,
			"version":        f.Version,
		},
		Description: fmt.Sprintf("form signed by %s", signerName),
	})

	if s.events != nil {
		s.events.Publish(f.Project.UserID, signing.SignedEvent{
			Type:      "form.signed",
			FormID:    f.ID,
			FormType:  f.Type,
			ProjectID: f.ProjectID,
			SignedBy:  signerName,
			SignedAt:  signedAt,
			Hash:      hash,
		})
	}
	return nil
}

// mergeAmendments applies signer amendments and returns the payload to store.
func mergeAmendments(f form.Form, amended json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(amended)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return f.Data, nil
	}

	payload, err := f.Payload()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "stored document is unreadable", err)
	}
	am, ok := payload.(form.Amendable)
	if !ok {
		return nil, apperr.Validation("this document does not accept amendments")
	}
	if err := am.Amend(trimmed); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := form.Validate(payload); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return form.Encode(payload)
}
