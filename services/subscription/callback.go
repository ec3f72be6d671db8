package subscription

import (
	"context"
	"fmt"

	"sokoni/models"
	"sokoni/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleCallback processes a gateway payment callback. The callback body
// is never trusted: the transaction status is always re-verified against
// the gateway before any state change. Duplicate callbacks for an already
// active subscription are a no-op.
func (s *DefaultSubscriptionService) HandleCallback(ctx context.Context, subscriptionID, externalTransactionID string) error {
	sub, err := s.Subs.GetByID(subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}
	if sub == nil {
		s.Logger.Warn("callback for unknown subscription",
			zap.String("subscriptionId", subscriptionID),
			zap.String("externalTransactionId", externalTransactionID),
		)
		return ErrSubscriptionNotFound
	}

	status, err := s.Gateway.VerifyTransaction(ctx, sub.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to verify transaction: %w", err)
	}
	if status != payment.StatusApproved {
		s.Logger.Info("callback with non-approved transaction, no state change",
			zap.String("subscriptionId", sub.ID),
			zap.String("status", string(status)),
		)
		return nil
	}

	profile := &models.SellerProfile{
		ID:                 uuid.New().String(),
		UserID:             sub.UserID,
		VerificationStatus: models.VerificationPending,
		Status:             models.SellerStatusActive,
	}

	activated, err := s.Subs.ActivateTransactionally(ctx, sub.ID, profile)
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}
	if !activated {
		s.Logger.Info("subscription already active, callback ignored",
			zap.String("subscriptionId", sub.ID))
		return nil
	}

	s.Logger.Info("subscription activated",
		zap.String("subscriptionId", sub.ID),
		zap.String("userId", sub.UserID),
	)

	user, err := s.Users.GetByID(sub.UserID)
	if err == nil && user != nil {
		if err := s.Tasks.EnqueueEmail(models.EmailMessage{
			To:       user.Email,
			Subject:  "Your seller subscription is active",
			Template: models.EmailTemplateSubscriptionActive,
			Context: map[string]string{
				"name":      user.Name,
				"planId":    sub.PlanID,
				"expiresAt": sub.ExpiresAt.Format("2 January 2006"),
			},
		}); err != nil {
			s.Logger.Error("failed to enqueue activation email",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
		}
	}
	return nil
}
