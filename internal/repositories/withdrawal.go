package repositories

import (
	"context"
	"time"

	"pixvault/internal/models"
)

// WithdrawalRepository defines withdrawal persistence operations.
// FindDue returns scheduled withdrawals that are eligible for
// execution: scheduled, not done, not errored, and past due.
// MarkDone and MarkError only touch rows that are not yet terminal;
// marking an already-terminal withdrawal is a no-op, keeping the
// {done, error} pair monotonic.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *models.Withdrawal) error
	CreateDestination(ctx context.Context, d *models.WithdrawalDestination) error
	GetByID(ctx context.Context, id string) (*models.Withdrawal, error)
	GetForUpdate(ctx context.Context, id string) (*models.Withdrawal, error)
	FindDue(ctx context.Context, now time.Time) ([]models.Withdrawal, error)
	MarkDone(ctx context.Context, id string) error
	MarkError(ctx context.Context, id string, reason string) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Withdrawal, error)
}
