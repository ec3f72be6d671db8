package models

import "time"

// Billing cycles.
const (
	BillingMonthly = "monthly"
	BillingAnnual  = "annual"
)

// Subscription statuses. A subscription is created pending, becomes active
// only after the payment gateway confirms the transaction, and is moved to
// failed or expired by the background sweep.
const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
	SubscriptionFailed  = "failed"
)

// Subscription tracks one billing cycle of a seller plan. At most one
// pending-or-active subscription exists per user.
type Subscription struct {
	ID            string     `bson:"id" json:"id"`
	UserID        string     `bson:"userId" json:"userId"`
	PlanID        string     `bson:"planId" json:"planId"`
	BillingCycle  string     `bson:"billingCycle" json:"billingCycle"`
	Amount        float64    `bson:"amount" json:"amount"`
	Currency      string     `bson:"currency" json:"currency"`
	Status        string     `bson:"status" json:"status"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentURL    string     `bson:"paymentUrl,omitempty" json:"paymentUrl,omitempty"`
	ActivatedAt   *time.Time `bson:"activatedAt,omitempty" json:"activatedAt,omitempty"`
	ExpiresAt     time.Time  `bson:"expiresAt" json:"expiresAt"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// CycleDuration returns the length of the billing cycle.
func CycleDuration(billingCycle string) time.Duration {
	if billingCycle == BillingAnnual {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
