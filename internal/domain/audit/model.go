package audit

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionMint     = "mint_token"
	ActionDispatch = "dispatch"
	ActionSign     = "sign"
	ActionStatus   = "status_change"
)

// AuditLog records a state change. UserID is 0 for the external signer.
type AuditLog struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	Action       string         `gorm:"size:50;not null" json:"action"`
	ResourceType string         `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string         `gorm:"size:64;not null" json:"resource_id"`
	OldData      datatypes.JSON `json:"old_data,omitempty" swaggertype:"object"`
	NewData      datatypes.JSON `json:"new_data,omitempty" swaggertype:"object"`
	IPAddress    string         `gorm:"size:64" json:"ip_address"`
	UserAgent    string         `gorm:"type:text" json:"user_agent"`
	Description  string         `gorm:"type:text" json:"description"`
	CreatedAt    time.Time      `gorm:"index;autoCreateTime" json:"created_at"`
}
