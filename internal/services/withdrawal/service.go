package withdrawal

import (
	"context"
	"errors"
	"log"
	"time"

	"pixvault/internal/models"
	"pixvault/internal/repositories"
)

type service struct {
	store    repositories.Store
	cache    AccountCache
	notifier Notifier
	metrics  MetricsCollector
	now      func() time.Time
}

// NewService creates the withdrawal executor. Metrics is optional;
// cache may be nil to disable invalidation.
func NewService(store repositories.Store, cache AccountCache, notifier Notifier, metrics MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Withdraw validates and persists a withdrawal inside one database
// transaction. Immediate requests debit the balance now; scheduled
// requests only record intent together with an intent-only ledger
// entry (balance_before == balance_after). On any failure the whole
// transaction rolls back and the typed error surfaces to the caller.
func (s *service) Withdraw(ctx context.Context, req Request) (*Result, error) {
	kind := KindImmediate
	if req.IsScheduled() {
		kind = KindScheduled
	}

	start := time.Now()
	result, note, err := s.execute(ctx, req)
	s.metrics.RecordDuration(kind, time.Since(start))

	if err != nil {
		s.metrics.RecordWithdrawal(StatusError, kind)
		return nil, err
	}

	s.metrics.RecordWithdrawal(StatusSuccess, kind)
	s.metrics.RecordAmount(kind, req.Amount)

	// Best-effort work outside the transaction: cache invalidation and
	// the owner notification do not participate in the atomicity
	// guarantee.
	if s.cache != nil && !result.Scheduled {
		if err := s.cache.InvalidateAccount(ctx, result.AccountID); err != nil {
			log.Printf("failed to invalidate account cache %s: %v", result.AccountID, err)
		}
	}
	if err := s.notifier.NotifyWithdrawalSuccess(ctx, note); err != nil {
		log.Printf("failed to notify withdrawal %s: %v", result.WithdrawalID, err)
	}

	return result, nil
}

func (s *service) execute(ctx context.Context, req Request) (*Result, Notification, error) {
	var (
		result Result
		note   Notification
	)

	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		account, err := tx.Accounts().GetForUpdate(ctx, req.AccountID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		key, err := tx.PixKeys().FindActiveKey(ctx, req.AccountID, req.PixKey)
		if err != nil && !errors.Is(err, repositories.ErrPixKeyNotFound) {
			return err
		}

		if err := Validate(ValidationInput{
			Account:        account,
			DestinationKey: key,
			Amount:         req.Amount,
			ScheduleFor:    req.ScheduleFor,
			Now:            s.now(),
		}); err != nil {
			return err
		}

		balanceBefore := account.Balance
		if !req.IsScheduled() {
			newBalance := account.Balance.Sub(req.Amount)
			if newBalance.IsNegative() {
				return ErrInsufficientBalance
			}
			account.Balance = newBalance
			if err := tx.Accounts().Save(ctx, account); err != nil {
				return err
			}
		}

		method := req.Method
		if method == "" {
			method = models.WithdrawalMethodPix
		}
		w := &models.Withdrawal{
			AccountID:    account.ID,
			Method:       method,
			Amount:       req.Amount,
			Scheduled:    req.IsScheduled(),
			ScheduledFor: req.ScheduleFor,
			Done:         !req.IsScheduled(),
		}
		if err := tx.Withdrawals().Create(ctx, w); err != nil {
			return err
		}
		if err := tx.Withdrawals().CreateDestination(ctx, &models.WithdrawalDestination{
			WithdrawalID: w.ID,
			Type:         key.KeyType,
			KeyValue:     key.KeyValue,
		}); err != nil {
			return err
		}

		description := "Withdrawal executed"
		if req.IsScheduled() {
			description = "Withdrawal scheduled for " + req.ScheduleFor.Format(time.DateTime)
		}
		refType := models.LedgerReferenceWithdrawal
		if err := tx.Ledger().Append(ctx, &models.LedgerEntry{
			AccountID:     account.ID,
			Type:          models.LedgerTypeWithdraw,
			Amount:        req.Amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  account.Balance,
			Description:   description,
			ReferenceID:   &w.ID,
			ReferenceType: &refType,
		}); err != nil {
			return err
		}

		result = Result{
			WithdrawalID: w.ID,
			AccountID:    account.ID,
			Amount:       req.Amount,
			Scheduled:    w.Scheduled,
			ScheduledFor: w.ScheduledFor,
			Balance:      account.Balance,
		}
		note = Notification{
			AccountID:     account.ID,
			Amount:        req.Amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  account.Balance,
			Description:   description,
		}
		return nil
	})
	if err != nil {
		return nil, Notification{}, err
	}

	return &result, note, nil
}
