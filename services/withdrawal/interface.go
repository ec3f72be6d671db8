package withdrawal

import (
	"context"

	notificationRepo "sokoni/database/repository/notification"
	sellerRepo "sokoni/database/repository/seller"
	userRepo "sokoni/database/repository/user"
	withdrawalRepo "sokoni/database/repository/withdrawal"
	"sokoni/models"
	"sokoni/services/payment"
	"sokoni/services/tasks"

	"go.uber.org/zap"
)

// WithdrawalService manages seller payout requests and their status
// lifecycle.
type WithdrawalService interface {
	// Request creates a pending withdrawal for the user's seller profile.
	Request(ctx context.Context, userID string, amount float64, currency string, bank models.BankInfo) (*models.Withdrawal, error)
	// UpdateStatus transitions the withdrawal to the given status. Moving
	// into processing triggers exactly one payout transfer at the gateway.
	// Terminal withdrawals reject any further transition.
	UpdateStatus(ctx context.Context, withdrawalID, toStatus string) (*models.Withdrawal, error)
	// Get retrieves a withdrawal by id.
	Get(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	// ListForUser retrieves the withdrawals of the user's seller profile.
	ListForUser(ctx context.Context, userID string) ([]models.Withdrawal, error)
	// ListAll retrieves every withdrawal, newest first.
	ListAll(ctx context.Context) ([]models.Withdrawal, error)
}

// DefaultWithdrawalService is the production implementation of
// WithdrawalService.
type DefaultWithdrawalService struct {
	Withdrawals   withdrawalRepo.WithdrawalRepository
	Sellers       sellerRepo.SellerRepository
	Users         userRepo.UserRepository
	Notifications notificationRepo.NotificationRepository
	Gateway       payment.Gateway
	Tasks         tasks.Enqueuer
	Logger        *zap.Logger
}
