package subscription

import (
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionConflict signals the user already has a pending or
	// unexpired active subscription.
	ErrSubscriptionConflict = errors.New("user already has a pending or active subscription")
	// ErrSubscriptionNotFound signals an unknown subscription id; callbacks
	// carrying one terminate with no side effects.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrInvalidBillingCycle signals an unknown billing cycle value.
	ErrInvalidBillingCycle = errors.New("billing cycle must be monthly or annual")
)

// PaymentInitiationFailedError wraps a gateway failure during initiation.
// The subscription row created alongside has been rolled back.
type PaymentInitiationFailedError struct {
	Cause error
}

func (e *PaymentInitiationFailedError) Error() string {
	return fmt.Sprintf("payment initiation failed: %v", e.Cause)
}

func (e *PaymentInitiationFailedError) Unwrap() error {
	return e.Cause
}
