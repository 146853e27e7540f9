package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusQuoteSent  Status = "quote_sent"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPaid       Status = "paid"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:      {StatusQuoteSent, StatusCancelled},
	StatusQuoteSent:  {StatusApproved, StatusCancelled},
	StatusApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusPaid},
	StatusPaid:       {},
	StatusCancelled:  {StatusDraft},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether an owner may move a project from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s.
func (s Status) NextStatuses() []Status {
	return append([]Status(nil), transitions[s]...)
}

// Project groups the documents of one client engagement.
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Status      Status    `gorm:"size:32;not null;default:'draft'" json:"status"`
	Contact     *Contact  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"contact,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}

// Contact is the client party of a project; one per project.
type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;not null;uniqueIndex" json:"project_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Phone     *string   `gorm:"size:32" json:"phone"`
	Email     *string   `gorm:"size:200" json:"email"`
	Address   *string   `gorm:"size:300" json:"address"`
	City      *string   `gorm:"size:100" json:"city"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ContactName returns the contact's name or "" when the project has no contact.
func (p *Project) ContactName() string {
	if p.Contact == nil {
		return ""
	}
	return p.Contact.Name
}
