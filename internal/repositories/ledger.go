package repositories

import (
	"context"

	"pixvault/internal/models"
)

// LedgerRepository appends to and reads the transaction history log.
// Entries are append-only; there are no update or delete operations.
type LedgerRepository interface {
	Append(ctx context.Context, entry *models.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.LedgerEntry, error)
}
