package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger entry types
const (
	LedgerTypeWithdraw = "withdraw"
	LedgerTypeDeposit  = "deposit"
	LedgerTypeDebit    = "debit"
	LedgerTypeCredit   = "credit"
)

// Reference types for ledger entries
const (
	LedgerReferenceWithdrawal = "withdrawal"
)

// LedgerEntry is an append-only audit record of a balance-affecting
// (or intent-only) event. Entries are written in the same transaction
// as the balance mutation they document and are never updated.
type LedgerEntry struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     string          `gorm:"type:uuid;index;not null" json:"account_id"`
	Account       *Account        `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Type          string          `gorm:"not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"balance_after"`
	Description   string          `json:"description"`
	ReferenceID   *string         `gorm:"type:uuid" json:"reference_id,omitempty"`
	ReferenceType *string         `json:"reference_type,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
