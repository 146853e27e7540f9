package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/signing"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/canonhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(token, name, sig string) signing.Submission {
	return signing.Submission{
		Token:         token,
		SignerName:    name,
		SignatureData: sig,
		IP:            "203.0.113.9",
		UserAgent:     "signer-test",
	}
}

// Create, mint, view, sign, and the link is dead afterwards.
func TestSigningFlowQuote(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)

	snap, err := env.svc.Signing.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, form.TypeQuote, snap.Type)
	assert.Equal(t, f.ID, snap.ID)
	assert.Equal(t, "Kitchen", snap.ProjectName)
	assert.Equal(t, "Dana Cohen", snap.ContactName)
	assert.JSONEq(t, quotePayload, string(snap.Data))

	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana Cohen", signatureDataURI(t))))

	_, err = env.svc.Signing.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	view, err := env.svc.Form.GetForm(env.owner.UserID, f.ID)
	require.NoError(t, err)
	require.NotNil(t, view.SignedAt)
	assert.Equal(t, "Dana Cohen", *view.SignedBy)
	assert.Equal(t, "203.0.113.9", *view.SignerIP)
	assert.Equal(t, form.IntegrityValid, view.IntegrityStatus)
	assert.Equal(t, 1, env.blobs.Len())

	err = env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana Cohen", signatureDataURI(t)))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Amended ratings are stored and covered by the hash.
func TestSigningFlowCompletionAmendments(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeCompletion, completionPayload)
	token := env.mint(t, f.ID)

	sub := submission(token, "Dana Cohen", signatureDataURI(t))
	sub.AmendedFields = json.RawMessage(`{"satisfaction_overall":3,"feedback_notes":"Delayed by two days"}`)
	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), sub))

	view, err := env.svc.Form.GetForm(env.owner.UserID, f.ID)
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(view.Data, &stored))
	assert.EqualValues(t, 3, stored["satisfaction_overall"])
	assert.Equal(t, "Delayed by two days", stored["feedback_notes"])

	want, err := canonhash.SumJSON(view.Data)
	require.NoError(t, err)
	require.NotNil(t, view.SignatureHash)
	assert.Equal(t, want, *view.SignatureHash)

	original, err := canonhash.SumJSON([]byte(completionPayload))
	require.NoError(t, err)
	assert.NotEqual(t, original, *view.SignatureHash)
}

func TestSubmitRejectsBadAmendments(t *testing.T) {
	env := newTestEnv(t)

	completion := env.createForm(t, form.TypeCompletion, completionPayload)
	token := env.mint(t, completion.ID)
	sub := submission(token, "Dana", signatureDataURI(t))
	sub.AmendedFields = json.RawMessage(`{"satisfaction_overall":9}`)
	err := env.svc.Signing.SubmitSignature(context.Background(), sub)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	sub.AmendedFields = json.RawMessage(`{"site_name":"elsewhere"}`)
	err = env.svc.Signing.SubmitSignature(context.Background(), sub)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	quote := env.createForm(t, form.TypeQuote, quotePayload)
	qtoken := env.mint(t, quote.ID)
	qsub := submission(qtoken, "Dana", signatureDataURI(t))
	qsub.AmendedFields = json.RawMessage(`{"total":1}`)
	err = env.svc.Signing.SubmitSignature(context.Background(), qsub)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Nothing was consumed by the rejected attempts.
	_, err = env.svc.Signing.Validate(token)
	assert.NoError(t, err)
	_, err = env.svc.Signing.Validate(qtoken)
	assert.NoError(t, err)
}

func TestSubmitValidatesInputsBeforeTokenLookup(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		sub  signing.Submission
	}{
		{"empty name", submission("not-a-token", "  ", signatureDataURI(t))},
		{"empty signature", submission("not-a-token", "Dana", "")},
		{"not base64", submission("not-a-token", "Dana", "data:image/png;base64,@@@")},
		{"blank canvas", submission("not-a-token", "Dana", blankDataURI(t))},
		{"not png", submission("not-a-token", "Dana", "R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.svc.Signing.SubmitSignature(context.Background(), tt.sub)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

// Two racing submissions with one token; exactly one wins.
func TestConcurrentSubmitSingleUse(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)
	sig := signatureDataURI(t)

	names := []string{"First Signer", "Second Signer"}
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			<-start
			errs[i] = env.svc.Signing.SubmitSignature(context.Background(), submission(token, name, sig))
		}(i, name)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
	assert.Equal(t, 1, successes)

	got, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SignedBy)
	assert.Contains(t, names, *got.SignedBy)
	assert.Equal(t, 1, env.blobs.Len())
}

// An expired token is refused even though it was never used.
func TestExpiredTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)

	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, env.db.Model(&signing.Token{}).Where("form_id = ?", f.ID).Update("expires_at", past).Error)

	_, err := env.svc.Signing.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	err = env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana", signatureDataURI(t)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	got, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SignedAt)
	assert.Zero(t, env.blobs.Len())
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)

	env.svc.Signing.now = func() time.Time { return time.Now().UTC().Add(defaultTokenTTL + time.Second) }
	_, err := env.svc.Signing.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnknownTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	for _, raw := range []string{"", "garbage", "6f1c0a9e-5a43-4b55-9a43-3b2a7d8e9f10"} {
		_, err := env.svc.Signing.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, InvalidTokenMessage, apperr.MessageOf(err))
	}
}

// A signed form cannot be edited or deleted and stays byte-identical.
func TestSignedFormIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)
	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana", signatureDataURI(t))))

	before, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)

	changed := `{
		"items": [{"id":"1","description":"Tiling","quantity":3,"unit":"m2","unit_price":100,"total":300}],
		"subtotal": 300, "vat_rate": 0.17, "vat_amount": 51, "total": 351,
		"valid_until": "2026-12-31"
	}`
	_, err = env.svc.Form.UpdateForm(env.owner, f.ID, form.UpdateFormDTO{Data: []byte(changed)})
	assert.ErrorIs(t, err, ErrEditSigned)
	assert.Equal(t, apperr.KindAlreadySigned, apperr.KindOf(err))

	err = env.svc.Form.DeleteForm(env.owner, f.ID)
	assert.ErrorIs(t, err, ErrDeleteSigned)

	_, err = env.svc.Dispatch.Send(context.Background(), env.owner, f.ID, form.SendFormDTO{Method: form.ChannelLink})
	assert.ErrorIs(t, err, ErrMintSigned)

	after, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Data, after.Data)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.SignatureHash, after.SignatureHash)
	assert.Equal(t, before.SignedBy, after.SignedBy)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}

// A failed upload leaves nothing behind and the token stays usable.
func TestUploadFailureIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)

	env.blobs.SetFailPut(errors.New("storage unavailable"))
	err := env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana", signatureDataURI(t)))
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	tok, err := env.repos.Token.GetTokenByHash(signing.HashToken(token))
	require.NoError(t, err)
	assert.False(t, tok.Used)
	assert.Nil(t, tok.ReservedUntil)
	got, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SignedAt)

	env.blobs.SetFailPut(nil)
	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana", signatureDataURI(t))))
	got, err = env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.SignedAt)
}

// Deleting a form kills its outstanding links.
func TestDeleteFormInvalidatesTokens(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	first := env.mint(t, f.ID)
	second := env.mint(t, f.ID)

	require.NoError(t, env.svc.Form.DeleteForm(env.owner, f.ID))

	for _, tok := range []string{first, second} {
		_, err := env.svc.Signing.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
	var count int64
	require.NoError(t, env.db.Model(&signing.Token{}).Where("form_id = ?", f.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSigningRevokesSiblingTokens(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	first := env.mint(t, f.ID)
	second := env.mint(t, f.ID)

	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), submission(first, "Dana", signatureDataURI(t))))

	_, err := env.svc.Signing.Validate(second)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEditAfterValidationInvalidatesVersion(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)

	snap, err := env.svc.Signing.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)

	_, err = env.svc.Form.UpdateForm(env.owner, f.ID, form.UpdateFormDTO{Data: []byte(quotePayload)})
	require.NoError(t, err)

	sub := submission(token, "Dana", signatureDataURI(t))
	sub.Version = &snap.Version
	err = env.svc.Signing.SubmitSignature(context.Background(), sub)
	assert.ErrorIs(t, err, ErrDocumentChanged)

	got, err := env.repos.Form.GetFormByID(f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SignedAt)
	assert.Equal(t, 2, got.Version)
}

func TestSignedEventPublished(t *testing.T) {
	env := newTestEnv(t)
	events, cancel := env.svc.Events.Subscribe(env.owner.UserID)
	defer cancel()

	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)
	require.NoError(t, env.svc.Signing.SubmitSignature(context.Background(), submission(token, "Dana", signatureDataURI(t))))

	select {
	case ev := <-events:
		assert.Equal(t, "form.signed", ev.Type)
		assert.Equal(t, f.ID, ev.FormID)
		assert.Equal(t, "Dana", ev.SignedBy)
	case <-time.After(time.Second):
		t.Fatal("no signed event")
	}
}
