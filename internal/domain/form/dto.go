package form

import (
	"encoding/json"
	"time"
)

type CreateFormDTO struct {
	Type Type            `json:"type" binding:"required,oneof=quote work_approval completion payment" example:"quote"`
	Data json.RawMessage `json:"data" binding:"required" swaggertype:"object"`
}

type UpdateFormDTO struct {
	Data json.RawMessage `json:"data" binding:"required" swaggertype:"object"`
}

type SendFormDTO struct {
	Method Channel `json:"method" binding:"required,oneof=link email sms" example:"email"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email" example:"client@example.com"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,max=32" example:"050-1234567"`
}

type SendFormResult struct {
	SigningURL    string    `json:"signing_url"`
	ExpiresAt     time.Time `json:"expires_at"`
	Dispatched    bool      `json:"dispatched"`
	DispatchError string    `json:"dispatch_error,omitempty"`
}

// IntegrityStatus is the outcome of re-hashing a form's stored payload.
type IntegrityStatus string

const (
	IntegrityUnsigned IntegrityStatus = "unsigned"
	IntegrityValid    IntegrityStatus = "valid"
	IntegrityTampered IntegrityStatus = "tampered"
)

type IntegrityReport struct {
	Status       IntegrityStatus `json:"status"`
	StoredHash   string          `json:"stored_hash,omitempty"`
	ComputedHash string          `json:"computed_hash,omitempty"`
}

// FormView is the owner-facing representation of a form.
type FormView struct {
	Form
	IntegrityStatus IntegrityStatus `json:"integrity_status"`
}
