package withdrawal

import (
	"context"
	"testing"
	"time"

	"pixvault/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *fakeStore) (Service, *recordingNotifier, *recordingCache) {
	notifier := &recordingNotifier{}
	cache := &recordingCache{}
	return NewService(store, cache, notifier, &NoopMetricsCollector{}), notifier, cache
}

func TestWithdraw_Immediate(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, "1000.00")
	key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
	svc, notifier, cache := newTestService(store)

	result, err := svc.Withdraw(context.Background(), Request{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("150.75"),
		PixKey:    key.KeyValue,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Scheduled)
	assert.True(t, result.Balance.Equal(decimal.RequireFromString("849.25")),
		"expected balance 849.25, got %s", result.Balance)

	stored := store.d.accounts[account.ID]
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("849.25")))

	w := store.d.withdrawals[result.WithdrawalID]
	require.NotNil(t, w)
	assert.True(t, w.Done)
	assert.False(t, w.Scheduled)
	assert.False(t, w.Error)

	dest := store.d.destinations[result.WithdrawalID]
	require.NotNil(t, dest)
	assert.Equal(t, models.PixKeyTypeEmail, dest.Type)
	assert.Equal(t, "owner@example.com", dest.KeyValue)

	require.Len(t, store.d.ledger, 1)
	entry := store.d.ledger[0]
	assert.Equal(t, models.LedgerTypeWithdraw, entry.Type)
	assert.True(t, entry.BalanceBefore.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, entry.BalanceAfter.Equal(decimal.RequireFromString("849.25")))
	require.NotNil(t, entry.ReferenceID)
	assert.Equal(t, result.WithdrawalID, *entry.ReferenceID)

	assert.Equal(t, 1, notifier.successCount())
	assert.Equal(t, 1, cache.count())
}

func TestWithdraw_Scheduled(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, "1000.00")
	key := seedActiveKey(store, account.ID, models.PixKeyTypePhone, "11987654321")
	svc, notifier, cache := newTestService(store)

	future := time.Now().Add(24 * time.Hour)
	result, err := svc.Withdraw(context.Background(), Request{
		AccountID:   account.ID,
		Amount:      decimal.RequireFromString("300.00"),
		PixKey:      key.KeyValue,
		ScheduleFor: &future,
	})
	require.NoError(t, err)

	assert.True(t, result.Scheduled)
	require.NotNil(t, result.ScheduledFor)

	// Scheduling records intent only; the balance is untouched until
	// the processor executes the item.
	stored := store.d.accounts[account.ID]
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("1000.00")))

	w := store.d.withdrawals[result.WithdrawalID]
	require.NotNil(t, w)
	assert.True(t, w.Scheduled)
	assert.False(t, w.Done)

	require.Len(t, store.d.ledger, 1)
	entry := store.d.ledger[0]
	assert.True(t, entry.BalanceBefore.Equal(entry.BalanceAfter),
		"intent entry must not move the balance")
	assert.Contains(t, entry.Description, "scheduled")

	assert.Equal(t, 1, notifier.successCount())
	assert.Equal(t, 0, cache.count(), "no balance change, no invalidation")
}

func TestWithdraw_AmountEqualToBalance(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, "500.00")
	key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
	svc, _, _ := newTestService(store)

	result, err := svc.Withdraw(context.Background(), Request{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("500.00"),
		PixKey:    key.KeyValue,
	})
	require.NoError(t, err)
	assert.True(t, result.Balance.IsZero())
}

func TestWithdraw_Rejections(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		setup   func(store *fakeStore) Request
		wantErr error
	}{
		{
			name: "account not found",
			setup: func(store *fakeStore) Request {
				return Request{
					AccountID: "missing",
					Amount:    decimal.RequireFromString("10.00"),
					PixKey:    "owner@example.com",
				}
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name: "no registered pix key",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				return Request{
					AccountID: account.ID,
					Amount:    decimal.RequireFromString("10.00"),
					PixKey:    "unknown@example.com",
				}
			},
			wantErr: ErrPixKeyNotFound,
		},
		{
			name: "inactive pix key",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
				store.d.pixKeys[len(store.d.pixKeys)-1].Status = models.PixKeyStatusInactive
				return Request{
					AccountID: account.ID,
					Amount:    decimal.RequireFromString("10.00"),
					PixKey:    key.KeyValue,
				}
			},
			wantErr: ErrPixKeyNotFound,
		},
		{
			name: "schedule in the past",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
				return Request{
					AccountID:   account.ID,
					Amount:      decimal.RequireFromString("10.00"),
					PixKey:      key.KeyValue,
					ScheduleFor: &past,
				}
			},
			wantErr: ErrInvalidSchedule,
		},
		{
			name: "zero amount",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
				return Request{
					AccountID: account.ID,
					Amount:    decimal.Zero,
					PixKey:    key.KeyValue,
				}
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
				return Request{
					AccountID: account.ID,
					Amount:    decimal.RequireFromString("-5.00"),
					PixKey:    key.KeyValue,
				}
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "insufficient balance",
			setup: func(store *fakeStore) Request {
				account := seedAccount(store, "100.00")
				key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
				return Request{
					AccountID: account.ID,
					Amount:    decimal.RequireFromString("100.01"),
					PixKey:    key.KeyValue,
				}
			},
			wantErr: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			req := tt.setup(store)
			svc, notifier, _ := newTestService(store)

			result, err := svc.Withdraw(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)

			// A rejected request leaves no trace.
			assert.Empty(t, store.d.withdrawals)
			assert.Empty(t, store.d.ledger)
			assert.Equal(t, 0, notifier.successCount())
		})
	}
}

func TestWithdraw_RejectionKeepsBalance(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, "100.00")
	key := seedActiveKey(store, account.ID, models.PixKeyTypeEmail, "owner@example.com")
	svc, _, _ := newTestService(store)

	_, err := svc.Withdraw(context.Background(), Request{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("250.00"),
		PixKey:    key.KeyValue,
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	stored := store.d.accounts[account.ID]
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("100.00")))
}
