package repositories

import (
	"context"

	"pixvault/internal/models"
)

// PixKeyRepository defines pix key persistence operations.
// FindActiveKey only matches active, non-deleted keys; inactive,
// pending and soft-deleted keys are invisible to withdrawals.
type PixKeyRepository interface {
	Create(ctx context.Context, key *models.PixKey) error
	FindActiveKey(ctx context.Context, accountID, keyValue string) (*models.PixKey, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.PixKey, error)
	Delete(ctx context.Context, accountID, id string) error
}
