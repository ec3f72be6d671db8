package models

import "time"

// Seller verification statuses.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// Seller statuses.
const (
	SellerStatusActive    = "active"
	SellerStatusSuspended = "suspended"
	SellerStatusBanned    = "banned"
)

// SellerProfile is created exactly once per user, either atomically with a
// Shop when a SellerRequest is approved, or lazily (verification pending)
// when a subscription payment activates.
type SellerProfile struct {
	ID                 string           `bson:"id" json:"id"`
	UserID             string           `bson:"userId" json:"userId"`
	BusinessInfo       BusinessInfo     `bson:"businessInfo" json:"businessInfo"`
	Documents          RequestDocuments `bson:"documents,omitempty" json:"documents,omitempty"`
	VerificationStatus string           `bson:"verificationStatus" json:"verificationStatus"`
	Status             string           `bson:"status" json:"status"`
	CreatedAt          time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time        `bson:"updatedAt" json:"updatedAt"`
}
