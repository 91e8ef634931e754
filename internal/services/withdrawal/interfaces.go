package withdrawal

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service executes withdrawal requests, immediate or scheduled.
type Service interface {
	Withdraw(ctx context.Context, req Request) (*Result, error)
}

// Notifier informs account owners about withdrawal outcomes. Notifier
// failures are logged by the callers and never fail the financial
// mutation.
type Notifier interface {
	NotifyWithdrawalSuccess(ctx context.Context, n Notification) error
	NotifyWithdrawalFailure(ctx context.Context, accountID string, amount decimal.Decimal, reason string) error
}

// AccountCache invalidates cached account reads after balance
// mutations. A nil cache disables invalidation.
type AccountCache interface {
	InvalidateAccount(ctx context.Context, id string) error
}
