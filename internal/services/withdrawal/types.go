package withdrawal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is a withdrawal request after transport-level parsing.
// ScheduleFor == nil means immediate execution.
type Request struct {
	AccountID   string
	Amount      decimal.Decimal
	PixKey      string
	Method      string
	ScheduleFor *time.Time
}

// IsScheduled reports whether the request asks for deferred execution.
func (r Request) IsScheduled() bool {
	return r.ScheduleFor != nil
}

// Result describes an accepted withdrawal. For scheduled withdrawals
// Balance is the untouched balance at acceptance time.
type Result struct {
	WithdrawalID string          `json:"withdrawal_id"`
	AccountID    string          `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	Scheduled    bool            `json:"scheduled"`
	ScheduledFor *time.Time      `json:"scheduled_for,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
}

// ItemResult is the outcome of one scheduled withdrawal in a batch run.
type ItemResult struct {
	WithdrawalID string `json:"withdrawal_id"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
}

// BatchResult aggregates one batch run. Results ordering is
// unspecified and need not match submission order. Skipped counts
// items another run settled first; they are not claimed as Processed.
type BatchResult struct {
	Total     int          `json:"total"`
	Processed int          `json:"processed"`
	Errors    int          `json:"errors"`
	Skipped   int          `json:"skipped"`
	Results   []ItemResult `json:"results"`
}

// Notification carries the data a notifier needs to inform the account
// owner about a balance-affecting event.
type Notification struct {
	AccountID     string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Description   string
}
