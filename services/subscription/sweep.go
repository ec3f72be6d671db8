package subscription

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Sweep marks pending subscriptions older than the payment window as
// failed and active subscriptions past their expiry as expired. It
// returns the number of subscriptions failed and expired.
func (s *DefaultSubscriptionService) Sweep(ctx context.Context, paymentWindow time.Duration) (int64, int64, error) {
	cutoff := time.Now().Add(-paymentWindow)

	failed, err := s.Subs.MarkFailedOlderThan(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to mark stale subscriptions: %w", err)
	}

	expired, err := s.Subs.MarkExpired(ctx)
	if err != nil {
		return failed, 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	if failed > 0 || expired > 0 {
		s.Logger.Info("subscription sweep completed",
			zap.Int64("failed", failed),
			zap.Int64("expired", expired),
		)
	}
	return failed, expired, nil
}
