// Package account manages account lifecycle, balance reads and
// deposits. Withdrawals live in the withdrawal package.
package account

import (
	"context"
	"errors"
	"log"

	"pixvault/internal/models"
	"pixvault/internal/repositories"

	"github.com/shopspring/decimal"
)

// Cache caches account reads; any balance mutation invalidates it.
type Cache interface {
	GetAccount(ctx context.Context, id string) (*models.Account, bool, error)
	SetAccount(ctx context.Context, account *models.Account) error
	InvalidateAccount(ctx context.Context, id string) error
}

type Service interface {
	Create(ctx context.Context, name string, initialBalance decimal.Decimal) (*models.Account, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal, description string) (*models.Account, error)
	History(ctx context.Context, id string, limit, offset int) ([]models.LedgerEntry, error)
	Withdrawals(ctx context.Context, id string, limit, offset int) ([]models.Withdrawal, error)
}

type service struct {
	store repositories.Store
	cache Cache
}

// NewService creates the account service. Cache may be nil.
func NewService(store repositories.Store, cache Cache) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, cache: cache}
}

func (s *service) Create(ctx context.Context, name string, initialBalance decimal.Decimal) (*models.Account, error) {
	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	account := &models.Account{Name: name, Balance: initialBalance}
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		if err := tx.Accounts().Create(ctx, account); err != nil {
			return err
		}
		if initialBalance.IsZero() {
			return nil
		}
		return tx.Ledger().Append(ctx, &models.LedgerEntry{
			AccountID:     account.ID,
			Type:          models.LedgerTypeDeposit,
			Amount:        initialBalance,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  initialBalance,
			Description:   "Initial balance",
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Account, error) {
	if s.cache != nil {
		if account, ok, err := s.cache.GetAccount(ctx, id); err == nil && ok {
			return account, nil
		}
	}

	account, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAccount(ctx, account); err != nil {
			log.Printf("failed to cache account %s: %v", id, err)
		}
	}
	return account, nil
}

// Deposit credits the account and appends the matching ledger entry in
// one transaction.
func (s *service) Deposit(ctx context.Context, id string, amount decimal.Decimal, description string) (*models.Account, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Deposit"
	}

	var account *models.Account
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		locked, err := tx.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		balanceBefore := locked.Balance
		locked.Balance = balanceBefore.Add(amount)
		if err := tx.Accounts().Save(ctx, locked); err != nil {
			return err
		}

		if err := tx.Ledger().Append(ctx, &models.LedgerEntry{
			AccountID:     locked.ID,
			Type:          models.LedgerTypeDeposit,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  locked.Balance,
			Description:   description,
		}); err != nil {
			return err
		}

		account = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAccount(ctx, id); err != nil {
			log.Printf("failed to invalidate account cache %s: %v", id, err)
		}
	}
	return account, nil
}

func (s *service) History(ctx context.Context, id string, limit, offset int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Ledger().ListByAccount(ctx, id, limit, offset)
}

func (s *service) Withdrawals(ctx context.Context, id string, limit, offset int) ([]models.Withdrawal, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Withdrawals().ListByAccount(ctx, id, limit, offset)
}
