package subscription

import (
	"context"
	"time"

	subscriptionRepo "sokoni/database/repository/subscription"
	userRepo "sokoni/database/repository/user"
	"sokoni/models"
	"sokoni/services/payment"
	"sokoni/services/tasks"

	"go.uber.org/zap"
)

// Config carries the injected plan pricing and callback addressing.
type Config struct {
	// PublicBaseURL is the externally reachable base of this service; the
	// gateway callback URL is derived from it.
	PublicBaseURL string
	Currency      string
	MonthlyAmount float64
	AnnualAmount  float64
}

// SubscriptionService manages the seller subscription lifecycle: checkout
// initiation, gateway callback handling, and the expiry sweep.
type SubscriptionService interface {
	// Initiate creates a pending subscription and a gateway transaction,
	// returning the subscription with its payment URL.
	Initiate(ctx context.Context, userID, planID, billingCycle string) (*models.Subscription, error)
	// HandleCallback processes an asynchronous gateway notification for the
	// subscription, verifying the transaction independently before any
	// state change.
	HandleCallback(ctx context.Context, subscriptionID, externalTransactionID string) error
	// GetCurrentForUser retrieves the user's pending or active subscription.
	GetCurrentForUser(ctx context.Context, userID string) (*models.Subscription, error)
	// Sweep fails stale pending subscriptions and expires lapsed active
	// ones. Returns (failed, expired) counts.
	Sweep(ctx context.Context, paymentWindow time.Duration) (int64, int64, error)
}

// DefaultSubscriptionService is the production implementation.
type DefaultSubscriptionService struct {
	Subs    subscriptionRepo.SubscriptionRepository
	Users   userRepo.UserRepository
	Gateway payment.Gateway
	Tasks   tasks.Enqueuer
	Cfg     Config
	Logger  *zap.Logger
}
