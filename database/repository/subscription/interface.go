package subscriptionRepo

import (
	"context"
	"errors"
	"time"

	"sokoni/models"
)

// Repository sentinels.
var (
	// ErrNotFound is returned when no subscription matches.
	ErrNotFound = errors.New("subscription not found")
)

// SubscriptionRepository defines methods for subscription data access,
// including the transactional initiation and activation mutations.
type SubscriptionRepository interface {
	// GetByID retrieves a subscription by its unique ID, or nil if absent.
	GetByID(id string) (*models.Subscription, error)
	// GetCurrentByUserID retrieves the user's pending or active
	// subscription, or nil if none exists.
	GetCurrentByUserID(userID string) (*models.Subscription, error)
	// InitiateTransactionally inserts the pending subscription, invokes
	// createTransaction against the payment gateway and persists the
	// returned transaction id and payment URL, all inside one transaction.
	// A gateway failure rolls the inserted row back.
	InitiateTransactionally(
		ctx context.Context,
		sub *models.Subscription,
		createTransaction func(ctx context.Context) (transactionID, paymentURL string, err error),
	) error
	// ActivateTransactionally flips the subscription to active, creates the
	// seller profile for the user when none exists yet, and promotes the
	// user to seller, in one transaction. Returns activated=false without
	// error when the subscription is already active (idempotent retry).
	ActivateTransactionally(
		ctx context.Context,
		subscriptionID string,
		profile *models.SellerProfile,
	) (activated bool, err error)
	// MarkFailedOlderThan moves pending subscriptions created before the
	// cutoff to failed. Returns the number of subscriptions updated.
	MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// MarkExpired moves active subscriptions whose expiry has passed to
	// expired. Returns the number of subscriptions updated.
	MarkExpired(ctx context.Context) (int64, error)
}
