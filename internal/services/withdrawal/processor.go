package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pixvault/internal/models"
	"pixvault/internal/repositories"
)

// ProcessorConfig tunes the batch processor. Zero values fall back to
// MaxConcurrentJobs and DefaultItemTimeout.
type ProcessorConfig struct {
	MaxConcurrent int
	ItemTimeout   time.Duration
}

// Processor executes due scheduled withdrawals under a bounded worker
// pool. Each item runs in its own database transaction; a failing item
// is marked errored and never aborts the rest of the batch.
type Processor struct {
	store         repositories.Store
	cache         AccountCache
	notifier      Notifier
	metrics       MetricsCollector
	maxConcurrent int
	itemTimeout   time.Duration
	now           func() time.Time
}

func NewProcessor(store repositories.Store, cache AccountCache, notifier Notifier, metrics MetricsCollector, cfg ProcessorConfig) *Processor {
	if store == nil {
		panic("store is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = MaxConcurrentJobs
	}
	if cfg.ItemTimeout <= 0 {
		cfg.ItemTimeout = DefaultItemTimeout
	}
	return &Processor{
		store:         store,
		cache:         cache,
		notifier:      notifier,
		metrics:       metrics,
		maxConcurrent: cfg.MaxConcurrent,
		itemTimeout:   cfg.ItemTimeout,
		now:           time.Now,
	}
}

// Run processes every withdrawal that is scheduled, not yet terminal
// and past due. Only a failure to read the due-list is fatal; per-item
// failures are aggregated into the result. Result ordering does not
// follow submission order.
func (p *Processor) Run(ctx context.Context) (*BatchResult, error) {
	due, err := p.store.Withdrawals().FindDue(ctx, p.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load due withdrawals: %w", err)
	}
	if len(due) == 0 {
		return &BatchResult{Results: []ItemResult{}}, nil
	}

	sem := make(chan struct{}, p.maxConcurrent)
	resultCh := make(chan ItemResult, len(due))
	var wg sync.WaitGroup

	for i := range due {
		wg.Add(1)
		go func(w models.Withdrawal) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			resultCh <- p.processOne(ctx, w)
		}(due[i])
	}

	wg.Wait()
	close(resultCh)

	batch := &BatchResult{
		Total:   len(due),
		Results: make([]ItemResult, 0, len(due)),
	}
	for r := range resultCh {
		switch r.Status {
		case StatusSuccess:
			batch.Processed++
		case StatusSkipped:
			batch.Skipped++
		default:
			batch.Errors++
		}
		batch.Results = append(batch.Results, r)
	}

	log.Printf("batch run finished: total=%d processed=%d errors=%d skipped=%d",
		batch.Total, batch.Processed, batch.Errors, batch.Skipped)
	return batch, nil
}

// processOne executes a single due withdrawal. The withdrawal row is
// locked first and its terminal flags re-read, so an item that another
// run settled in the meantime becomes a no-op instead of a double
// debit.
func (p *Processor) processOne(ctx context.Context, w models.Withdrawal) ItemResult {
	itemCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
	defer cancel()

	start := time.Now()
	var note Notification

	err := p.store.ExecuteInTransaction(func(tx repositories.Store) error {
		locked, err := tx.Withdrawals().GetForUpdate(itemCtx, w.ID)
		if err != nil {
			return err
		}
		if locked.Terminal() {
			return errAlreadySettled
		}

		account, err := tx.Accounts().GetForUpdate(itemCtx, locked.AccountID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return fmt.Errorf("%w: %s", ErrAccountNotFound, locked.AccountID)
			}
			return err
		}

		// Authoritative balance check: the balance may have changed
		// since the withdrawal was accepted.
		if locked.Amount.GreaterThan(account.Balance) {
			return fmt.Errorf("%w: balance %s, withdrawal amount %s",
				ErrInsufficientBalance, account.Balance.StringFixed(2), locked.Amount.StringFixed(2))
		}

		balanceBefore := account.Balance
		account.Balance = balanceBefore.Sub(locked.Amount)
		if account.Balance.IsNegative() {
			return ErrInsufficientBalance
		}
		if err := tx.Accounts().Save(itemCtx, account); err != nil {
			return err
		}

		refType := models.LedgerReferenceWithdrawal
		if err := tx.Ledger().Append(itemCtx, &models.LedgerEntry{
			AccountID:     account.ID,
			Type:          models.LedgerTypeWithdraw,
			Amount:        locked.Amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  account.Balance,
			Description:   "Scheduled withdrawal executed",
			ReferenceID:   &locked.ID,
			ReferenceType: &refType,
		}); err != nil {
			return err
		}

		if err := tx.Withdrawals().MarkDone(itemCtx, locked.ID); err != nil {
			return err
		}

		note = Notification{
			AccountID:     account.ID,
			Amount:        locked.Amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  account.Balance,
			Description:   "Scheduled withdrawal executed",
		}
		return nil
	})

	p.metrics.RecordDuration(KindScheduled, time.Since(start))

	if errors.Is(err, errAlreadySettled) {
		return ItemResult{WithdrawalID: w.ID, Status: StatusSkipped, Message: "already settled"}
	}
	if err != nil {
		p.metrics.RecordWithdrawal(StatusError, KindScheduled)
		p.failWithdrawal(ctx, w, err)
		return ItemResult{WithdrawalID: w.ID, Status: StatusError, Message: err.Error()}
	}

	p.metrics.RecordWithdrawal(StatusSuccess, KindScheduled)
	p.metrics.RecordAmount(KindScheduled, w.Amount)

	if p.cache != nil {
		if err := p.cache.InvalidateAccount(ctx, w.AccountID); err != nil {
			log.Printf("failed to invalidate account cache %s: %v", w.AccountID, err)
		}
	}
	if err := p.notifier.NotifyWithdrawalSuccess(ctx, note); err != nil {
		log.Printf("failed to notify withdrawal %s: %v", w.ID, err)
	}

	return ItemResult{WithdrawalID: w.ID, Status: StatusSuccess}
}

// failWithdrawal records the terminal error state. The mark-error
// write is its own atomic unit, independent of other items; the parent
// context is used because the item context may already be expired.
//
// A transiently failed item (say, a lock-wait timeout against a run
// that then settled the row) must not stamp error onto a done
// withdrawal, so the current flags are re-read and MarkError itself
// carries the not-yet-terminal guard.
func (p *Processor) failWithdrawal(ctx context.Context, w models.Withdrawal, cause error) {
	if current, err := p.store.Withdrawals().GetByID(ctx, w.ID); err == nil && current.Terminal() {
		return
	}
	if err := p.store.Withdrawals().MarkError(ctx, w.ID, cause.Error()); err != nil {
		log.Printf("failed to mark withdrawal %s as errored: %v", w.ID, err)
	}
	if err := p.notifier.NotifyWithdrawalFailure(ctx, w.AccountID, w.Amount, cause.Error()); err != nil {
		log.Printf("failed to notify withdrawal failure %s: %v", w.ID, err)
	}
}
