package repositories

import (
	"context"

	"pixvault/internal/models"
)

// AccountRepository defines account persistence operations.
// GetForUpdate must take a row lock so that concurrent balance
// mutations on the same account are serialized by the database.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetForUpdate(ctx context.Context, id string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
}
