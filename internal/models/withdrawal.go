package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Withdrawal methods
const (
	WithdrawalMethodPix = "pix"
)

// Withdrawal is a request to debit an account, either immediately or
// at a scheduled time. A scheduled withdrawal is created with
// {scheduled, !done, !error} and transitions exactly once, to done
// (terminal success) or error with a reason (terminal failure).
type Withdrawal struct {
	ID           string                 `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    string                 `gorm:"type:uuid;index;not null" json:"account_id"`
	Account      *Account               `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Method       string                 `gorm:"not null;default:'pix'" json:"method"`
	Amount       decimal.Decimal        `gorm:"type:numeric(19,2);not null" json:"amount"`
	Scheduled    bool                   `gorm:"not null;default:false" json:"scheduled"`
	ScheduledFor *time.Time             `json:"scheduled_for,omitempty"`
	Done         bool                   `gorm:"not null;default:false" json:"done"`
	Error        bool                   `gorm:"not null;default:false" json:"error"`
	ErrorReason  *string                `json:"error_reason,omitempty"`
	Destination  *WithdrawalDestination `gorm:"foreignKey:WithdrawalID" json:"destination,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func (w *Withdrawal) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Terminal reports whether the withdrawal has reached a final state.
func (w *Withdrawal) Terminal() bool {
	return w.Done || w.Error
}

// WithdrawalDestination records where the money of a single withdrawal
// goes. One row per withdrawal, immutable once created.
type WithdrawalDestination struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	WithdrawalID string    `gorm:"type:uuid;uniqueIndex;not null" json:"withdrawal_id"`
	Type         string    `gorm:"not null" json:"type"`
	KeyValue     string    `gorm:"not null" json:"key_value"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d *WithdrawalDestination) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
