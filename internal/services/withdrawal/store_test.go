package withdrawal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pixvault/internal/models"
	"pixvault/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeData is the shared in-memory state behind fakeStore. Transactions
// snapshot it and restore on error, which mirrors rollback closely
// enough for the engine's atomicity assertions.
type fakeData struct {
	mu           sync.Mutex
	accounts     map[string]*models.Account
	withdrawals  map[string]*models.Withdrawal
	destinations map[string]*models.WithdrawalDestination
	pixKeys      []models.PixKey
	ledger       []models.LedgerEntry
	users        map[string]*models.User

	// txDelay stretches the pre-lock window so concurrent transaction
	// attempts overlap; txMax records the high-water mark.
	txDelay  time.Duration
	txActive int32
	txMax    int32
}

type fakeStore struct {
	d    *fakeData
	inTx bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{d: &fakeData{
		accounts:     make(map[string]*models.Account),
		withdrawals:  make(map[string]*models.Withdrawal),
		destinations: make(map[string]*models.WithdrawalDestination),
		users:        make(map[string]*models.User),
	}}
}

func (s *fakeStore) Accounts() repositories.AccountRepository       { return &fakeAccountRepo{s} }
func (s *fakeStore) Withdrawals() repositories.WithdrawalRepository { return &fakeWithdrawalRepo{s} }
func (s *fakeStore) PixKeys() repositories.PixKeyRepository         { return &fakePixKeyRepo{s} }
func (s *fakeStore) Ledger() repositories.LedgerRepository          { return &fakeLedgerRepo{s} }
func (s *fakeStore) Users() repositories.UserRepository             { return &fakeUserRepo{s} }

func (s *fakeStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.d.mu.Lock()
	return s.d.mu.Unlock
}

func (s *fakeStore) ExecuteInTransaction(fn func(repositories.Store) error) error {
	active := atomic.AddInt32(&s.d.txActive, 1)
	defer atomic.AddInt32(&s.d.txActive, -1)
	for {
		highWater := atomic.LoadInt32(&s.d.txMax)
		if active <= highWater || atomic.CompareAndSwapInt32(&s.d.txMax, highWater, active) {
			break
		}
	}
	if s.d.txDelay > 0 {
		time.Sleep(s.d.txDelay)
	}

	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	snap := s.d.snapshot()
	if err := fn(&fakeStore{d: s.d, inTx: true}); err != nil {
		s.d.restore(snap)
		return err
	}
	return nil
}

type fakeSnapshot struct {
	accounts     map[string]*models.Account
	withdrawals  map[string]*models.Withdrawal
	destinations map[string]*models.WithdrawalDestination
	pixKeys      []models.PixKey
	ledger       []models.LedgerEntry
}

func (d *fakeData) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		accounts:     make(map[string]*models.Account, len(d.accounts)),
		withdrawals:  make(map[string]*models.Withdrawal, len(d.withdrawals)),
		destinations: make(map[string]*models.WithdrawalDestination, len(d.destinations)),
		pixKeys:      append([]models.PixKey(nil), d.pixKeys...),
		ledger:       append([]models.LedgerEntry(nil), d.ledger...),
	}
	for id, a := range d.accounts {
		copied := *a
		snap.accounts[id] = &copied
	}
	for id, w := range d.withdrawals {
		copied := *w
		snap.withdrawals[id] = &copied
	}
	for id, dest := range d.destinations {
		copied := *dest
		snap.destinations[id] = &copied
	}
	return snap
}

func (d *fakeData) restore(snap fakeSnapshot) {
	d.accounts = snap.accounts
	d.withdrawals = snap.withdrawals
	d.destinations = snap.destinations
	d.pixKeys = snap.pixKeys
	d.ledger = snap.ledger
}

type fakeAccountRepo struct{ s *fakeStore }

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	defer r.s.lock()()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	copied := *account
	r.s.d.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	defer r.s.lock()()
	account, ok := r.s.d.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetForUpdate(ctx context.Context, id string) (*models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) Save(_ context.Context, account *models.Account) error {
	defer r.s.lock()()
	copied := *account
	r.s.d.accounts[account.ID] = &copied
	return nil
}

type fakeWithdrawalRepo struct{ s *fakeStore }

func (r *fakeWithdrawalRepo) Create(_ context.Context, w *models.Withdrawal) error {
	defer r.s.lock()()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	copied := *w
	r.s.d.withdrawals[w.ID] = &copied
	return nil
}

func (r *fakeWithdrawalRepo) CreateDestination(_ context.Context, d *models.WithdrawalDestination) error {
	defer r.s.lock()()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	copied := *d
	r.s.d.destinations[d.WithdrawalID] = &copied
	return nil
}

func (r *fakeWithdrawalRepo) GetByID(_ context.Context, id string) (*models.Withdrawal, error) {
	defer r.s.lock()()
	w, ok := r.s.d.withdrawals[id]
	if !ok {
		return nil, repositories.ErrWithdrawalNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWithdrawalRepo) GetForUpdate(ctx context.Context, id string) (*models.Withdrawal, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeWithdrawalRepo) FindDue(_ context.Context, now time.Time) ([]models.Withdrawal, error) {
	defer r.s.lock()()
	var due []models.Withdrawal
	for _, w := range r.s.d.withdrawals {
		if w.Scheduled && !w.Done && !w.Error && w.ScheduledFor != nil && !w.ScheduledFor.After(now) {
			due = append(due, *w)
		}
	}
	return due, nil
}

// MarkDone and MarkError mirror the guarded terminal writes: an
// already-terminal row is left untouched.
func (r *fakeWithdrawalRepo) MarkDone(_ context.Context, id string) error {
	defer r.s.lock()()
	w, ok := r.s.d.withdrawals[id]
	if !ok || w.Done || w.Error {
		return nil
	}
	w.Done = true
	return nil
}

func (r *fakeWithdrawalRepo) MarkError(_ context.Context, id string, reason string) error {
	defer r.s.lock()()
	w, ok := r.s.d.withdrawals[id]
	if !ok || w.Done || w.Error {
		return nil
	}
	w.Error = true
	w.ErrorReason = &reason
	return nil
}

func (r *fakeWithdrawalRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]models.Withdrawal, error) {
	defer r.s.lock()()
	var out []models.Withdrawal
	for _, w := range r.s.d.withdrawals {
		if w.AccountID == accountID {
			out = append(out, *w)
		}
	}
	return out, nil
}

type fakePixKeyRepo struct{ s *fakeStore }

func (r *fakePixKeyRepo) Create(_ context.Context, key *models.PixKey) error {
	defer r.s.lock()()
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	r.s.d.pixKeys = append(r.s.d.pixKeys, *key)
	return nil
}

func (r *fakePixKeyRepo) FindActiveKey(_ context.Context, accountID, keyValue string) (*models.PixKey, error) {
	defer r.s.lock()()
	for _, k := range r.s.d.pixKeys {
		if k.AccountID == accountID && k.KeyValue == keyValue && k.Status == models.PixKeyStatusActive {
			copied := k
			return &copied, nil
		}
	}
	return nil, repositories.ErrPixKeyNotFound
}

func (r *fakePixKeyRepo) ListByAccount(_ context.Context, accountID string) ([]models.PixKey, error) {
	defer r.s.lock()()
	var out []models.PixKey
	for _, k := range r.s.d.pixKeys {
		if k.AccountID == accountID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakePixKeyRepo) Delete(_ context.Context, accountID, id string) error {
	defer r.s.lock()()
	for i, k := range r.s.d.pixKeys {
		if k.AccountID == accountID && k.ID == id {
			r.s.d.pixKeys = append(r.s.d.pixKeys[:i], r.s.d.pixKeys[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPixKeyNotFound
}

type fakeLedgerRepo struct{ s *fakeStore }

func (r *fakeLedgerRepo) Append(_ context.Context, entry *models.LedgerEntry) error {
	defer r.s.lock()()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	r.s.d.ledger = append(r.s.d.ledger, *entry)
	return nil
}

func (r *fakeLedgerRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]models.LedgerEntry, error) {
	defer r.s.lock()()
	var out []models.LedgerEntry
	for _, e := range r.s.d.ledger {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	defer r.s.lock()()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.s.d.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByAccountID(_ context.Context, accountID string) (*models.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.AccountID == accountID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// Seeding helpers

func seedAccount(s *fakeStore, balance string) *models.Account {
	account := &models.Account{
		ID:      uuid.NewString(),
		Name:    "Test Account",
		Balance: decimal.RequireFromString(balance),
	}
	_ = s.Accounts().Create(context.Background(), account)
	return account
}

func seedActiveKey(s *fakeStore, accountID, keyType, keyValue string) *models.PixKey {
	key := &models.PixKey{
		ID:        uuid.NewString(),
		AccountID: accountID,
		KeyType:   keyType,
		KeyValue:  keyValue,
		Status:    models.PixKeyStatusActive,
	}
	_ = s.PixKeys().Create(context.Background(), key)
	return key
}

func seedScheduled(s *fakeStore, accountID, amount string, due time.Time) *models.Withdrawal {
	w := &models.Withdrawal{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Method:       models.WithdrawalMethodPix,
		Amount:       decimal.RequireFromString(amount),
		Scheduled:    true,
		ScheduledFor: &due,
	}
	_ = s.Withdrawals().Create(context.Background(), w)
	return w
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []Notification
	failures  []string
}

func (n *recordingNotifier) NotifyWithdrawalSuccess(_ context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, note)
	return nil
}

func (n *recordingNotifier) NotifyWithdrawalFailure(_ context.Context, accountID string, _ decimal.Decimal, reason string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, reason)
	return nil
}

func (n *recordingNotifier) successCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes)
}

// recordingCache captures invalidations.
type recordingCache struct {
	mu            sync.Mutex
	invalidations []string
}

func (c *recordingCache) InvalidateAccount(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations = append(c.invalidations, id)
	return nil
}

func (c *recordingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.invalidations)
}
