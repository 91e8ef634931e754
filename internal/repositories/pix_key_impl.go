package repositories

import (
	"context"
	"errors"
	"fmt"

	"pixvault/internal/models"

	"gorm.io/gorm"
)

type pixKeyRepository struct {
	db *gorm.DB
}

func NewPixKeyRepository(db *gorm.DB) PixKeyRepository {
	return &pixKeyRepository{db: db}
}

func (r *pixKeyRepository) Create(ctx context.Context, key *models.PixKey) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PixKey{}).
		Where("account_id = ? AND key_value = ?", key.AccountID, key.KeyValue).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check pix key uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicatePixKey
	}

	if err := r.db.WithContext(ctx).Create(key).Error; err != nil {
		return fmt.Errorf("failed to create pix key: %w", err)
	}
	return nil
}

func (r *pixKeyRepository) FindActiveKey(ctx context.Context, accountID, keyValue string) (*models.PixKey, error) {
	var key models.PixKey
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND key_value = ? AND status = ?",
			accountID, keyValue, models.PixKeyStatusActive).
		First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPixKeyNotFound
		}
		return nil, fmt.Errorf("failed to find pix key: %w", err)
	}
	return &key, nil
}

func (r *pixKeyRepository) ListByAccount(ctx context.Context, accountID string) ([]models.PixKey, error) {
	var keys []models.PixKey
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pix keys: %w", err)
	}
	return keys, nil
}

// Delete soft-deletes the key; historical withdrawals keep referencing
// its value through their destination rows.
func (r *pixKeyRepository) Delete(ctx context.Context, accountID, id string) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.PixKey{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pix key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPixKeyNotFound
	}
	return nil
}
