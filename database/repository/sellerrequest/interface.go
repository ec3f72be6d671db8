package sellerRequestRepo

import (
	"errors"

	"sokoni/models"
)

// Repository sentinels. Services translate these into their own error types.
var (
	// ErrNotFound is returned when no request matches the given ID.
	ErrNotFound = errors.New("seller request not found")
	// ErrNotPending is returned when a finalizing update matched a request
	// that is no longer pending.
	ErrNotPending = errors.New("seller request is not pending")
)

// SellerRequestRepository defines methods for seller application data access.
type SellerRequestRepository interface {
	// Create inserts a new seller request.
	Create(request *models.SellerRequest) error
	// GetByID retrieves a request by its unique ID, or nil if absent.
	GetByID(id string) (*models.SellerRequest, error)
	// GetActiveByUserID retrieves the user's pending or approved request,
	// or nil if none exists.
	GetActiveByUserID(userID string) (*models.SellerRequest, error)
	// GetLatestByUserID retrieves the user's most recent request, or nil.
	GetLatestByUserID(userID string) (*models.SellerRequest, error)
	// GetAllByStatus retrieves all requests in the given status.
	GetAllByStatus(status string) ([]models.SellerRequest, error)
	// Reject finalizes a pending request as rejected. Returns ErrNotFound
	// or ErrNotPending when the conditional update matches nothing.
	Reject(id, reviewerID, reason string) error
}
