package signing

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/projectsign/internal/domain/form"
	"gorm.io/gorm"
)

// Token is a single-use capability to sign one form. Only the SHA-256 of the
// raw token is persisted.
type Token struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	FormID        string     `gorm:"size:36;not null;index" json:"form_id"`
	TokenHash     string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt     time.Time  `gorm:"not null;index" json:"expires_at"`
	Used          bool       `gorm:"not null;default:false" json:"used"`
	UsedAt        *time.Time `json:"used_at"`
	UsedIP        *string    `gorm:"size:64" json:"used_ip"`
	UsedUserAgent *string    `gorm:"type:text" json:"used_user_agent"`
	ReservedUntil *time.Time `json:"-"`
	ReservationID *string    `gorm:"size:36" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Form          form.Form  `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Token) TableName() string {
	return "signing_tokens"
}

func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Usable reports whether the token may still be consumed at now.
func (t *Token) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// HashToken returns the lookup key stored for a raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Consumption is the audit metadata recorded when a token is used.
type Consumption struct {
	ReservationID string
	At            time.Time
	IP            string
	UserAgent     string
}
