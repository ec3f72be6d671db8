package models

import "time"

// Notification types used by the onboarding and payout workflows.
const (
	NotificationSellerApproved     = "seller_approved"
	NotificationSellerRejected     = "seller_rejected"
	NotificationSubscriptionActive = "subscription_active"
	NotificationWithdrawalStatus   = "withdrawal_status"
)

// Notification is a persisted in-app message for a user.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      string            `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
