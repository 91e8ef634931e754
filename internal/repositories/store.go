// Package repositories provides the data access layer.
// Each repository is an interface with a gorm-backed implementation;
// Store bundles them so services can run multi-repository work inside
// a single database transaction.
package repositories

import "gorm.io/gorm"

// Store exposes all repositories plus transaction scoping. Inside
// ExecuteInTransaction the callback receives a Store whose
// repositories share one transaction; returning an error rolls
// everything back.
type Store interface {
	Accounts() AccountRepository
	Withdrawals() WithdrawalRepository
	PixKeys() PixKeyRepository
	Ledger() LedgerRepository
	Users() UserRepository

	ExecuteInTransaction(fn func(Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given gorm handle.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Accounts() AccountRepository       { return &accountRepository{db: s.db} }
func (s *store) Withdrawals() WithdrawalRepository { return &withdrawalRepository{db: s.db} }
func (s *store) PixKeys() PixKeyRepository         { return &pixKeyRepository{db: s.db} }
func (s *store) Ledger() LedgerRepository          { return &ledgerRepository{db: s.db} }
func (s *store) Users() UserRepository             { return &userRepository{db: s.db} }

func (s *store) ExecuteInTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
