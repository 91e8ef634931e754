// Package notification delivers withdrawal outcome notifications to
// account owners. Delivery is best-effort; the withdrawal engine logs
// and ignores notifier errors.
package notification

import (
	"context"
	"log"

	"pixvault/internal/repositories"
	"pixvault/internal/services/withdrawal"

	"github.com/shopspring/decimal"
)

const fallbackEmail = "customer@example.com"

// Service implements withdrawal.Notifier by resolving the account
// owner's email and logging the message payload.
type Service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) NotifyWithdrawalSuccess(ctx context.Context, n withdrawal.Notification) error {
	email := s.ownerEmail(ctx, n.AccountID)
	log.Printf("notify %s: %s amount=%s balance=%s->%s",
		email, n.Description, n.Amount.StringFixed(2),
		n.BalanceBefore.StringFixed(2), n.BalanceAfter.StringFixed(2))
	return nil
}

func (s *Service) NotifyWithdrawalFailure(ctx context.Context, accountID string, amount decimal.Decimal, reason string) error {
	email := s.ownerEmail(ctx, accountID)
	log.Printf("notify %s: withdrawal of %s failed: %s",
		email, amount.StringFixed(2), reason)
	return nil
}

func (s *Service) ownerEmail(ctx context.Context, accountID string) string {
	if s.users == nil {
		return fallbackEmail
	}
	user, err := s.users.GetByAccountID(ctx, accountID)
	if err != nil {
		return fallbackEmail
	}
	return user.Email
}
