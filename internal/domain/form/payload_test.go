package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuote = `{
	"items": [{"id":"1","description":"Tiling","quantity":2,"unit":"m2","unit_price":100,"total":200}],
	"subtotal": 200, "vat_rate": 0.17, "vat_amount": 34, "total": 234,
	"valid_until": "2026-12-31"
}`

const validCompletion = `{
	"site_name": "Herzl 12",
	"work_date": "2026-10-01",
	"satisfaction_overall": 5, "site_conduct": 5, "work_quality": 5, "appearance": 5, "worker_behavior": 5,
	"legal_disclaimer_accepted": true
}`

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		data    string
		wantErr string
	}{
		{"quote ok", TypeQuote, validQuote, ""},
		{"quote without items", TypeQuote, `{"items":[],"subtotal":0,"vat_rate":0.17,"vat_amount":0,"total":0,"valid_until":"2026-12-31"}`, "items must be at least 1"},
		{"quote bad totals", TypeQuote, `{"items":[{"id":"1","description":"x","quantity":1,"unit":"u","unit_price":10,"total":10}],"subtotal":10,"vat_rate":0.17,"vat_amount":1.7,"total":99,"valid_until":"2026-12-31"}`, "total does not match"},
		{"quote unknown field", TypeQuote, `{"bogus":1}`, "unknown field"},
		{"work approval ok", TypeWorkApproval, `{"site_name":"a","start_date":"2026-01-02","work_details":"b","contact_name":"c","contact_phone":"050-1234567","infrastructure_declaration":true}`, ""},
		{"work approval bad phone", TypeWorkApproval, `{"site_name":"a","start_date":"2026-01-02","work_details":"b","contact_name":"c","contact_phone":"12345","infrastructure_declaration":true}`, "contact_phone must be a valid Israeli phone number"},
		{"work approval undeclared", TypeWorkApproval, `{"site_name":"a","start_date":"2026-01-02","work_details":"b","contact_name":"c","contact_phone":"0501234567","infrastructure_declaration":false}`, "infrastructure_declaration must be true"},
		{"completion ok", TypeCompletion, validCompletion, ""},
		{"completion rating out of range", TypeCompletion, `{"site_name":"a","work_date":"2026-01-02","satisfaction_overall":6,"site_conduct":5,"work_quality":5,"appearance":5,"worker_behavior":5,"legal_disclaimer_accepted":true}`, "satisfaction_overall must be at most 5"},
		{"payment ok", TypePayment, `{"completion_id":"7b4a3f0e-7c43-4e68-9d1f-0a8c1b2d3e4f","amount_due":100,"amount_paid":100,"payment_method":"bit","paid_at":"2026-01-02","remaining_balance":0}`, ""},
		{"payment bad method", TypePayment, `{"completion_id":"7b4a3f0e-7c43-4e68-9d1f-0a8c1b2d3e4f","amount_due":100,"amount_paid":100,"payment_method":"barter","paid_at":"2026-01-02","remaining_balance":0}`, "payment_method must be one of"},
		{"unknown type", Type("invoice"), `{}`, "unknown form type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeAndValidate(tt.typ, []byte(tt.data))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.typ, p.FormType())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompletionAmend(t *testing.T) {
	p, err := Decode(TypeCompletion, []byte(validCompletion))
	require.NoError(t, err)
	c := p.(*CompletionPayload)

	err = c.Amend(json.RawMessage(`{"satisfaction_overall":3,"feedback_notes":"  Delayed by two days "}`))
	require.NoError(t, err)
	assert.Equal(t, 3, c.SatisfactionOverall)
	assert.Equal(t, 5, c.WorkQuality)
	require.NotNil(t, c.FeedbackNotes)
	assert.Equal(t, "Delayed by two days", *c.FeedbackNotes)
}

func TestCompletionAmendRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"rating too low", `{"site_conduct":0}`, "site_conduct must be an integer between 1 and 5"},
		{"rating fractional", `{"appearance":2.5}`, "appearance must be an integer between 1 and 5"},
		{"not amendable", `{"site_name":"elsewhere","satisfaction_overall":1}`, "fields cannot be amended: site_name"},
		{"not an object", `[1,2]`, "amended fields must be an object"},
		{"feedback wrong type", `{"feedback_notes":5}`, "feedback_notes must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(TypeCompletion, []byte(validCompletion))
			require.NoError(t, err)
			c := p.(*CompletionPayload)
			before := *c

			err = c.Amend(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, before, *c)
		})
	}
}

func TestCompletionAmendFeedbackTooLong(t *testing.T) {
	p, _ := Decode(TypeCompletion, []byte(validCompletion))
	long := make([]rune, MaxFeedbackLength+1)
	for i := range long {
		long[i] = 'א'
	}
	raw, _ := json.Marshal(map[string]string{"feedback_notes": string(long)})

	err := p.(*CompletionPayload).Amend(raw)
	assert.Error(t, err)
}

func TestOnlyCompletionIsAmendable(t *testing.T) {
	for _, typ := range Sequence {
		p, err := New(typ)
		require.NoError(t, err)
		_, ok := p.(Amendable)
		assert.Equal(t, typ == TypeCompletion, ok, string(typ))
	}
}

func TestEncodeRoundTripKeepsFields(t *testing.T) {
	p, err := Decode(TypeQuote, []byte(validQuote))
	require.NoError(t, err)
	b, err := Encode(p)
	require.NoError(t, err)

	again, err := DecodeAndValidate(TypeQuote, b)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestIsIsraeliPhone(t *testing.T) {
	assert.True(t, IsIsraeliPhone("050-123-4567"))
	assert.True(t, IsIsraeliPhone("03-1234567"))
	assert.True(t, IsIsraeliPhone("0771234567"))
	assert.False(t, IsIsraeliPhone("+972501234567"))
	assert.False(t, IsIsraeliPhone("0601234567"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "הזמנת עבודה", LabelOf(TypeWorkApproval).Dispatch)
	assert.Equal(t, "work-approval", LabelOf(TypeWorkApproval).Slug)
	assert.Equal(t, "טופס הגשת עבודה", LabelOf(TypeCompletion).Dispatch)
	assert.Equal(t, "invoice", LabelOf(Type("invoice")).Title)
}

func TestFormPayload(t *testing.T) {
	f := &Form{Type: TypeCompletion, Data: []byte(validCompletion)}
	p, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, 5, p.(*CompletionPayload).SatisfactionOverall)
	assert.False(t, f.IsSigned())
}
