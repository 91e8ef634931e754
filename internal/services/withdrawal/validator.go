package withdrawal

import (
	"time"

	"pixvault/internal/models"

	"github.com/shopspring/decimal"
)

// ValidationInput is a snapshot of everything the admission decision
// needs. Account and DestinationKey are nil when the lookup found
// nothing.
type ValidationInput struct {
	Account        *models.Account
	DestinationKey *models.PixKey
	Amount         decimal.Decimal
	ScheduleFor    *time.Time
	Now            time.Time
}

// Validate decides whether a withdrawal request is admissible. Checks
// run in a fixed order and short-circuit on the first failure:
// account exists, destination key active, schedule strictly in the
// future, amount positive, amount covered by the current balance.
//
// The balance check is identical for immediate and scheduled requests.
// Scheduling does not reserve funds, so for scheduled withdrawals this
// is a point-in-time admission check that the processor repeats at
// execution time.
func Validate(in ValidationInput) error {
	if in.Account == nil {
		return ErrAccountNotFound
	}
	if in.DestinationKey == nil || in.DestinationKey.Status != models.PixKeyStatusActive {
		return ErrPixKeyNotFound
	}
	if in.ScheduleFor != nil && !in.ScheduleFor.After(in.Now) {
		return ErrInvalidSchedule
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if in.Amount.GreaterThan(in.Account.Balance) {
		return ErrInsufficientBalance
	}
	return nil
}
