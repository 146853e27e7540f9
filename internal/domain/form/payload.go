package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Payload is the typed body of a form. Exactly one variant exists per Type.
type Payload interface {
	FormType() Type
}

// Amendable is implemented by payloads whose signer may change a subset of
// fields at signing time.
type Amendable interface {
	Payload
	AmendableFields() []string
	Amend(raw json.RawMessage) error
}

type QuoteItem struct {
	ID          string  `json:"id" validate:"required"`
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required,max=50"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Total       float64 `json:"total" validate:"gte=0"`
}

type QuotePayload struct {
	Items         []QuoteItem `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64     `json:"subtotal" validate:"gte=0"`
	VATRate       float64     `json:"vat_rate" validate:"gte=0,lte=1"`
	VATAmount     float64     `json:"vat_amount" validate:"gte=0"`
	Total         float64     `json:"total" validate:"gte=0"`
	ValidUntil    string      `json:"valid_until" validate:"required,datetime=2006-01-02"`
	Notes         *string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PaymentTerms  *string     `json:"payment_terms,omitempty" validate:"omitempty,max=2000"`
	WarrantyTerms *string     `json:"warranty_terms,omitempty" validate:"omitempty,max=2000"`
}

func (QuotePayload) FormType() Type { return TypeQuote }

type WorkApprovalPayload struct {
	SiteName                  string  `json:"site_name" validate:"required,max=200"`
	QuoteReference            *string `json:"quote_reference,omitempty" validate:"omitempty,max=100"`
	StartDate                 string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	WorkDetails               string  `json:"work_details" validate:"required,max=5000"`
	Notes                     *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Additions                 *string `json:"additions,omitempty" validate:"omitempty,max=2000"`
	ContactName               string  `json:"contact_name" validate:"required,max=200"`
	ContactPhone              string  `json:"contact_phone" validate:"required,ilphone"`
	InfrastructureDeclaration bool    `json:"infrastructure_declaration" validate:"eq=true"`
}

func (WorkApprovalPayload) FormType() Type { return TypeWorkApproval }

type CompletionPayload struct {
	SiteName                string  `json:"site_name" validate:"required,max=200"`
	OrderNumber             *string `json:"order_number,omitempty" validate:"omitempty,max=100"`
	WorkDate                string  `json:"work_date" validate:"required,datetime=2006-01-02"`
	SatisfactionOverall     int     `json:"satisfaction_overall" validate:"min=1,max=5"`
	SiteConduct             int     `json:"site_conduct" validate:"min=1,max=5"`
	WorkQuality             int     `json:"work_quality" validate:"min=1,max=5"`
	Appearance              int     `json:"appearance" validate:"min=1,max=5"`
	WorkerBehavior          int     `json:"worker_behavior" validate:"min=1,max=5"`
	FeedbackNotes           *string `json:"feedback_notes,omitempty" validate:"omitempty,max=2000"`
	LegalDisclaimerAccepted bool    `json:"legal_disclaimer_accepted" validate:"eq=true"`
}

func (CompletionPayload) FormType() Type { return TypeCompletion }

const MaxFeedbackLength = 2000

var completionAmendable = []string{
	"satisfaction_overall",
	"site_conduct",
	"work_quality",
	"appearance",
	"worker_behavior",
	"feedback_notes",
}

func (*CompletionPayload) AmendableFields() []string {
	return append([]string(nil), completionAmendable...)
}

// Amend applies signer-provided ratings and feedback. Unknown keys, ratings
// outside 1..5 and oversized feedback are rejected without touching p.
func (p *CompletionPayload) Amend(raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("amended fields must be an object")
	}

	var unknown []string
	for k := range fields {
		if !contains(completionAmendable, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("fields cannot be amended: %s", strings.Join(unknown, ", "))
	}

	next := *p
	ratings := map[string]*int{
		"satisfaction_overall": &next.SatisfactionOverall,
		"site_conduct":         &next.SiteConduct,
		"work_quality":         &next.WorkQuality,
		"appearance":           &next.Appearance,
		"worker_behavior":      &next.WorkerBehavior,
	}
	for name, dst := range ratings {
		v, ok := fields[name]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(v, &n); err != nil || n < 1 || n > 5 {
			return fmt.Errorf("%s must be an integer between 1 and 5", name)
		}
		*dst = n
	}

	if v, ok := fields["feedback_notes"]; ok {
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("feedback_notes must be a string")
		}
		if s != nil {
			trimmed := strings.TrimSpace(*s)
			if len([]rune(trimmed)) > MaxFeedbackLength {
				return fmt.Errorf("feedback_notes must be at most %d characters", MaxFeedbackLength)
			}
			if trimmed == "" {
				s = nil
			} else {
				s = &trimmed
			}
		}
		next.FeedbackNotes = s
	}

	*p = next
	return nil
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCheck    PaymentMethod = "check"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCredit   PaymentMethod = "credit"
	PaymentBit      PaymentMethod = "bit"
)

type PaymentPayload struct {
	CompletionID     string        `json:"completion_id" validate:"required,uuid"`
	AmountDue        float64       `json:"amount_due" validate:"gt=0"`
	AmountPaid       float64       `json:"amount_paid" validate:"gt=0"`
	PaymentMethod    PaymentMethod `json:"payment_method" validate:"required,oneof=cash check transfer credit bit"`
	ReferenceNumber  *string       `json:"reference_number,omitempty" validate:"omitempty,max=100"`
	PaidAt           string        `json:"paid_at" validate:"required,datetime=2006-01-02"`
	ReceiptNumber    *string       `json:"receipt_number,omitempty" validate:"omitempty,max=100"`
	RemainingBalance float64       `json:"remaining_balance" validate:"gte=0"`
	Notes            *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func (PaymentPayload) FormType() Type { return TypePayment }

// FullyPaid reports whether the payment settles the project.
func (p PaymentPayload) FullyPaid() bool {
	return p.RemainingBalance == 0
}

// New returns an empty payload for t.
func New(t Type) (Payload, error) {
	switch t {
	case TypeQuote:
		return &QuotePayload{}, nil
	case TypeWorkApproval:
		return &WorkApprovalPayload{}, nil
	case TypeCompletion:
		return &CompletionPayload{}, nil
	case TypePayment:
		return &PaymentPayload{}, nil
	default:
		return nil, fmt.Errorf("unknown form type %q", t)
	}
}

// Decode parses data into the variant for t. Unknown fields are rejected.
func Decode(t Type, data []byte) (Payload, error) {
	p, err := New(t)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", t, err)
	}
	return p, nil
}

// Encode serialises a payload into the representation stored on the form.
func Encode(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
