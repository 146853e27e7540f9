package signing

import (
	"encoding/json"
	"time"

	"github.com/linskybing/projectsign/internal/domain/form"
	"gorm.io/datatypes"
)

// Minted is returned to the owner once; the raw token is not stored.
type Minted struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FormSnapshot is what an external signer may see of a form.
type FormSnapshot struct {
	ID          string         `json:"id"`
	Type        form.Type      `json:"type"`
	Data        datatypes.JSON `json:"data" swaggertype:"object"`
	Version     int            `json:"version"`
	ProjectName string         `json:"project_name"`
	ContactName string         `json:"contact_name"`
}

type SubmitSignatureDTO struct {
	SignerName    string          `json:"signerName" binding:"required" example:"Dana Cohen"`
	SignatureData string          `json:"signatureData" binding:"required" example:"data:image/png;base64,iVBORw0..."`
	AmendedFields json.RawMessage `json:"amendedFields,omitempty" swaggertype:"object"`
	Version       *int            `json:"version,omitempty" example:"1"`
}

// Submission is a validated signing request plus transport metadata.
type Submission struct {
	Token         string
	SignerName    string
	SignatureData string
	AmendedFields json.RawMessage
	Version       *int
	IP            string
	UserAgent     string
}

// SignedEvent is published to the form owner after a successful signature.
type SignedEvent struct {
	Type      string    `json:"type"`
	FormID    string    `json:"form_id"`
	FormType  form.Type `json:"form_type"`
	ProjectID string    `json:"project_id"`
	SignedBy  string    `json:"signed_by"`
	SignedAt  time.Time `json:"signed_at"`
	Hash      string    `json:"hash"`
}
