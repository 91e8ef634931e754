package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pixvault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(ctx context.Context, w *models.Withdrawal) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

func (r *withdrawalRepository) CreateDestination(ctx context.Context, d *models.WithdrawalDestination) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal destination: %w", err)
	}
	return nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.WithContext(ctx).
		Preload("Destination").
		First(&w, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	return &w, nil
}

// GetForUpdate locks the withdrawal row for the duration of the
// surrounding transaction. Two batch runs racing on the same id will
// serialize here, and the loser re-reads the terminal flags.
func (r *withdrawalRepository) GetForUpdate(ctx context.Context, id string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal: %w", err)
	}
	return &w, nil
}

func (r *withdrawalRepository) FindDue(ctx context.Context, now time.Time) ([]models.Withdrawal, error) {
	var due []models.Withdrawal
	err := r.db.WithContext(ctx).
		Where("scheduled = ? AND done = ? AND error = ? AND scheduled_for <= ?",
			true, false, false, now).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due withdrawals: %w", err)
	}
	return due, nil
}

// MarkDone and MarkError carry the eligibility guard in the WHERE
// clause, so a terminal row can never flip again no matter which run
// issues the write. Zero affected rows means the item was already
// terminal (or gone) and the write is a no-op.
func (r *withdrawalRepository) MarkDone(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("id = ? AND done = ? AND error = ?", id, false, false).
		Update("done", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark withdrawal done: %w", result.Error)
	}
	return nil
}

func (r *withdrawalRepository) MarkError(ctx context.Context, id string, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("id = ? AND done = ? AND error = ?", id, false, false).
		Updates(map[string]interface{}{"error": true, "error_reason": reason})
	if result.Error != nil {
		return fmt.Errorf("failed to mark withdrawal error: %w", result.Error)
	}
	return nil
}

func (r *withdrawalRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}
