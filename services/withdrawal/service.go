package withdrawal

import (
	"context"
	"fmt"

	withdrawalRepo "sokoni/database/repository/withdrawal"
	"sokoni/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request creates a pending withdrawal for the user's seller profile.
func (s *DefaultWithdrawalService) Request(ctx context.Context, userID string, amount float64, currency string, bank models.BankInfo) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if bank.AccountName == "" || bank.AccountNumber == "" || bank.BankName == "" {
		return nil, ErrBankInfoIncomplete
	}

	profile, err := s.Sellers.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller profile: %w", err)
	}
	if profile == nil {
		return nil, ErrSellerNotFound
	}

	w := &models.Withdrawal{
		ID:       uuid.New().String(),
		SellerID: profile.ID,
		UserID:   userID,
		Amount:   amount,
		Currency: currency,
		BankInfo: bank,
		Status:   models.WithdrawalPending,
	}
	if err := s.Withdrawals.Create(w); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	s.Logger.Info("withdrawal requested",
		zap.String("withdrawalId", w.ID),
		zap.String("sellerId", w.SellerID),
		zap.Float64("amount", amount),
	)
	return w, nil
}

// UpdateStatus transitions the withdrawal to the given status. The
// pending-to-processing move claims the status inside the payout
// transaction before the gateway is called, so of two concurrent calls
// only the claim winner issues a transfer; the transfer id commits in the
// same transaction as the status, so a retry after a crash can never issue
// a second transfer for the same withdrawal.
func (s *DefaultWithdrawalService) UpdateStatus(ctx context.Context, withdrawalID, toStatus string) (*models.Withdrawal, error) {
	if !models.IsValidWithdrawalStatus(toStatus) {
		return nil, ErrInvalidStatus
	}

	w, err := s.Withdrawals.GetByID(withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch withdrawal: %w", err)
	}
	if w == nil {
		return nil, ErrWithdrawalNotFound
	}
	if models.IsTerminalWithdrawalStatus(w.Status) {
		return nil, ErrAlreadyFinalized
	}
	if w.Status == toStatus {
		return w, nil
	}

	if toStatus == models.WithdrawalProcessing && w.TransferID == "" {
		var gwErr error
		transferID := ""
		err := s.Withdrawals.ProcessTransactionally(ctx, w.ID, func(txCtx context.Context) (string, error) {
			transfer, err := s.Gateway.CreateTransfer(txCtx, w.Amount, w.BankInfo,
				fmt.Sprintf("Seller payout %s", w.ID), w.Currency)
			if err != nil {
				gwErr = err
				return "", err
			}
			transferID = transfer.ID
			return transfer.ID, nil
		})
		if err != nil {
			switch {
			case gwErr != nil:
				return nil, &TransferFailedError{Cause: gwErr}
			case err == withdrawalRepo.ErrNotFound:
				return nil, ErrWithdrawalNotFound
			case err == withdrawalRepo.ErrStatusChanged:
				return nil, ErrAlreadyFinalized
			}
			return nil, fmt.Errorf("failed to process withdrawal: %w", err)
		}

		w.Status = toStatus
		w.TransferID = transferID

		s.Logger.Info("withdrawal status updated",
			zap.String("withdrawalId", w.ID),
			zap.String("status", toStatus),
			zap.String("transferId", w.TransferID),
		)
		s.notifyStatus(w)
		return w, nil
	}

	if err := s.Withdrawals.TransitionStatus(w.ID, w.Status, toStatus); err != nil {
		switch err {
		case withdrawalRepo.ErrNotFound:
			return nil, ErrWithdrawalNotFound
		case withdrawalRepo.ErrStatusChanged:
			return nil, ErrAlreadyFinalized
		}
		return nil, fmt.Errorf("failed to transition withdrawal: %w", err)
	}

	w.Status = toStatus

	s.Logger.Info("withdrawal status updated",
		zap.String("withdrawalId", w.ID),
		zap.String("status", toStatus),
		zap.String("transferId", w.TransferID),
	)
	s.notifyStatus(w)
	return w, nil
}

// notifyStatus records an in-app notification and enqueues push and email
// delivery. Failures are logged, never surfaced: the transition already
// committed.
func (s *DefaultWithdrawalService) notifyStatus(w *models.Withdrawal) {
	notif := &models.Notification{
		ID:     uuid.New().String(),
		UserID: w.UserID,
		Type:   models.NotificationWithdrawalStatus,
		Title:  "Withdrawal update",
		Body:   fmt.Sprintf("Your withdrawal of %.2f %s is now %s.", w.Amount, w.Currency, w.Status),
		Data: map[string]string{
			"withdrawalId": w.ID,
			"status":       w.Status,
		},
	}
	if err := s.Notifications.Create(notif); err != nil {
		s.Logger.Error("failed to record withdrawal notification",
			zap.String("withdrawalId", w.ID), zap.Error(err))
	}

	if err := s.Tasks.EnqueuePush(models.PushMessage{
		UserID: w.UserID,
		Title:  notif.Title,
		Body:   notif.Body,
		Data:   notif.Data,
	}); err != nil {
		s.Logger.Error("failed to enqueue withdrawal push",
			zap.String("withdrawalId", w.ID), zap.Error(err))
	}

	user, err := s.Users.GetByID(w.UserID)
	if err != nil || user == nil {
		s.Logger.Error("failed to fetch user for withdrawal email",
			zap.String("withdrawalId", w.ID), zap.Error(err))
		return
	}
	if err := s.Tasks.EnqueueEmail(models.EmailMessage{
		To:       user.Email,
		Subject:  "Withdrawal update",
		Template: models.EmailTemplateWithdrawalStatus,
		Context: map[string]string{
			"name":     user.Name,
			"amount":   fmt.Sprintf("%.2f", w.Amount),
			"currency": w.Currency,
			"status":   w.Status,
		},
	}); err != nil {
		s.Logger.Error("failed to enqueue withdrawal email",
			zap.String("withdrawalId", w.ID), zap.Error(err))
	}
}

// Get retrieves a withdrawal by id.
func (s *DefaultWithdrawalService) Get(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	w, err := s.Withdrawals.GetByID(withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch withdrawal: %w", err)
	}
	if w == nil {
		return nil, ErrWithdrawalNotFound
	}
	return w, nil
}

// ListForUser retrieves the withdrawals of the user's seller profile.
func (s *DefaultWithdrawalService) ListForUser(ctx context.Context, userID string) ([]models.Withdrawal, error) {
	profile, err := s.Sellers.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller profile: %w", err)
	}
	if profile == nil {
		return nil, ErrSellerNotFound
	}
	return s.Withdrawals.GetAllBySellerID(profile.ID)
}

// ListAll retrieves every withdrawal, newest first.
func (s *DefaultWithdrawalService) ListAll(ctx context.Context) ([]models.Withdrawal, error) {
	return s.Withdrawals.GetAll()
}
