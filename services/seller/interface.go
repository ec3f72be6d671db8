package seller

import (
	"context"

	categoryRepo "sokoni/database/repository/category"
	notificationRepo "sokoni/database/repository/notification"
	sellerRepo "sokoni/database/repository/seller"
	sellerRequestRepo "sokoni/database/repository/sellerrequest"
	userRepo "sokoni/database/repository/user"
	"sokoni/models"
	"sokoni/services/tasks"

	"go.uber.org/zap"
)

// ApprovalResult carries the identifiers created by a successful approval.
type ApprovalResult struct {
	SellerID string `json:"sellerId"`
	ShopID   string `json:"shopId"`
	UserID   string `json:"userId"`
}

// SellerService orchestrates the seller onboarding workflow: application
// submission, review, and the atomic approval transition.
type SellerService interface {
	// SubmitRequest validates and persists a new seller application.
	SubmitRequest(ctx context.Context, request models.SellerRequest) (*models.SellerRequest, error)
	// ApproveRequest runs the atomic approval transition and returns the
	// created identifiers.
	ApproveRequest(ctx context.Context, requestID, reviewerID string) (*ApprovalResult, error)
	// RejectRequest finalizes a pending request as rejected.
	RejectRequest(ctx context.Context, requestID, reviewerID, reason string) error
	// GetRequest retrieves a request by ID.
	GetRequest(ctx context.Context, requestID string) (*models.SellerRequest, error)
	// GetLatestRequestForUser retrieves the user's most recent application.
	GetLatestRequestForUser(ctx context.Context, userID string) (*models.SellerRequest, error)
	// ListRequestsByStatus lists applications in the given status.
	ListRequestsByStatus(ctx context.Context, status string) ([]models.SellerRequest, error)
	// GetSellerForUser retrieves the user's seller profile and shop.
	GetSellerForUser(ctx context.Context, userID string) (*models.SellerProfile, *models.Shop, error)
}

// DefaultSellerService is the production implementation.
type DefaultSellerService struct {
	Requests      sellerRequestRepo.SellerRequestRepository
	Sellers       sellerRepo.SellerRepository
	Users         userRepo.UserRepository
	Categories    categoryRepo.CategoryRepository
	Notifications notificationRepo.NotificationRepository
	Tasks         tasks.Enqueuer
	Logger        *zap.Logger
}
