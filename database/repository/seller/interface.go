package sellerRepo

import (
	"context"
	"errors"

	"sokoni/models"
)

// Repository sentinels.
var (
	// ErrNotFound is returned when no seller profile matches.
	ErrNotFound = errors.New("seller profile not found")
	// ErrRequestNotPending aborts the approval transaction when the request
	// was finalized concurrently.
	ErrRequestNotPending = errors.New("seller request is not pending")
)

// SellerRepository defines methods for seller profile and shop data access,
// including the multi-document approval transaction.
type SellerRepository interface {
	// GetByID retrieves a seller profile by its unique ID, or nil if absent.
	GetByID(id string) (*models.SellerProfile, error)
	// GetByUserID retrieves the seller profile owned by the user, or nil.
	GetByUserID(userID string) (*models.SellerProfile, error)
	// GetShopBySellerID retrieves the seller's shop, or nil.
	GetShopBySellerID(sellerID string) (*models.Shop, error)
	// UpdateStatus sets the seller status and mirrors it onto the shop.
	UpdateStatus(sellerID, status string) error
	// ApproveRequestTransactionally runs the all-or-nothing approval
	// mutation: insert profile, insert shop, finalize the request as
	// approved, promote the user to seller, insert the notification.
	// The request flip is conditional on status=="pending"; a concurrent
	// finalization aborts the whole transaction with ErrRequestNotPending.
	ApproveRequestTransactionally(
		ctx context.Context,
		requestID, reviewerID string,
		profile *models.SellerProfile,
		shop *models.Shop,
		notification *models.Notification,
	) error
}
