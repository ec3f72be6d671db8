package subscription

import (
	"context"
	"fmt"
	"time"

	"sokoni/models"
	"sokoni/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Initiate creates a pending subscription and the matching gateway
// transaction in one atomic operation. If the gateway call fails the
// subscription row is rolled back, so no orphaned pending row can block
// future checkouts.
func (s *DefaultSubscriptionService) Initiate(ctx context.Context, userID, planID, billingCycle string) (*models.Subscription, error) {
	if billingCycle != models.BillingMonthly && billingCycle != models.BillingAnnual {
		return nil, ErrInvalidBillingCycle
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	current, err := s.Subs.GetCurrentByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check current subscription: %w", err)
	}
	if current != nil {
		// An active subscription past its expiry is the sweep's problem,
		// not a conflict.
		if current.Status == models.SubscriptionPending || current.ExpiresAt.After(time.Now()) {
			return nil, ErrSubscriptionConflict
		}
	}

	amount := s.Cfg.MonthlyAmount
	if billingCycle == models.BillingAnnual {
		amount = s.Cfg.AnnualAmount
	}

	sub := &models.Subscription{
		ID:           uuid.New().String(),
		UserID:       userID,
		PlanID:       planID,
		BillingCycle: billingCycle,
		Amount:       amount,
		Currency:     s.Cfg.Currency,
		Status:       models.SubscriptionPending,
		ExpiresAt:    time.Now().Add(models.CycleDuration(billingCycle)),
	}

	callbackURL := fmt.Sprintf("%s/api/subscriptions/callback/%s", s.Cfg.PublicBaseURL, sub.ID)

	err = s.Subs.InitiateTransactionally(ctx, sub, func(txCtx context.Context) (string, string, error) {
		txn, err := s.Gateway.CreateTransaction(txCtx, payment.TransactionRequest{
			Amount:        amount,
			Currency:      s.Cfg.Currency,
			Description:   fmt.Sprintf("Seller subscription (%s)", billingCycle),
			CustomerEmail: user.Email,
			CustomerName:  user.Name,
			CallbackURL:   callbackURL,
			Reference:     sub.ID,
		})
		if err != nil {
			return "", "", err
		}
		return txn.ID, txn.PaymentURL, nil
	})
	if err != nil {
		return nil, &PaymentInitiationFailedError{Cause: err}
	}

	s.Logger.Info("subscription initiated",
		zap.String("subscriptionId", sub.ID),
		zap.String("userId", userID),
		zap.String("billingCycle", billingCycle),
		zap.String("transactionId", sub.TransactionID),
	)
	return sub, nil
}

// GetCurrentForUser retrieves the user's pending or active subscription.
func (s *DefaultSubscriptionService) GetCurrentForUser(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.Subs.GetCurrentByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}
