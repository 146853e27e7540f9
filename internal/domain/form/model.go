package form

import (
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/projectsign/internal/domain/project"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Type string

const (
	TypeQuote        Type = "quote"
	TypeWorkApproval Type = "work_approval"
	TypeCompletion   Type = "completion"
	TypePayment      Type = "payment"
)

// Sequence is the order in which a project's documents are produced.
var Sequence = []Type{TypeQuote, TypeWorkApproval, TypeCompletion, TypePayment}

func (t Type) Valid() bool {
	for _, s := range Sequence {
		if s == t {
			return true
		}
	}
	return false
}

// Channel is how a signing link was delivered.
type Channel string

const (
	ChannelLink  Channel = "link"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Form is one business document of a project. Once SignedAt is set the row is
// immutable: payload, signature fields and existence are all frozen.
type Form struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	ProjectID       string          `gorm:"size:36;not null;index" json:"project_id"`
	Type            Type            `gorm:"size:32;not null" json:"type"`
	Data            datatypes.JSON  `gorm:"not null" json:"data"`
	Version         int             `gorm:"not null;default:1" json:"version"`
	SignatureURL    *string         `gorm:"type:text" json:"signature_url"`
	SignaturePath   *string         `gorm:"size:300" json:"-"`
	SignatureHash   *string         `gorm:"size:64" json:"signature_hash"`
	SignedAt        *time.Time      `gorm:"index" json:"signed_at"`
	SignedBy        *string         `gorm:"size:200" json:"signed_by"`
	SignerIP        *string         `gorm:"size:64" json:"signer_ip"`
	SignerUserAgent *string         `gorm:"type:text" json:"signer_user_agent"`
	SentAt          *time.Time      `json:"sent_at"`
	SentVia         *Channel        `gorm:"size:16" json:"sent_via"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Project         project.Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Version == 0 {
		f.Version = 1
	}
	return nil
}

func (f *Form) IsSigned() bool {
	return f.SignedAt != nil
}

// Payload decodes the stored data into the variant selected by f.Type.
func (f *Form) Payload() (Payload, error) {
	return Decode(f.Type, f.Data)
}

// Signature is the set of columns written when a form becomes signed.
type Signature struct {
	Data      datatypes.JSON
	URL       string
	Path      string
	Hash      string
	SignedAt  time.Time
	SignedBy  string
	IP        string
	UserAgent string
}
