package seller

import (
	"context"
	"errors"
	"fmt"

	sellerRepo "sokoni/database/repository/seller"
	sellerRequestRepo "sokoni/database/repository/sellerrequest"
	"sokoni/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApproveRequest runs the all-or-nothing approval transition: seller
// profile, shop, request finalization, user promotion and notification are
// committed together or not at all. Email and audit logging happen strictly
// after commit and cannot unwind it.
func (s *DefaultSellerService) ApproveRequest(ctx context.Context, requestID, reviewerID string) (*ApprovalResult, error) {
	request, err := s.Requests.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestAlreadyFinalized
	}

	profile := &models.SellerProfile{
		ID:                 uuid.New().String(),
		UserID:             request.UserID,
		BusinessInfo:       request.BusinessInfo,
		Documents:          request.Documents,
		VerificationStatus: models.VerificationVerified,
		Status:             models.SellerStatusActive,
	}
	shop := &models.Shop{
		ID:          uuid.New().String(),
		SellerID:    profile.ID,
		Name:        request.BusinessInfo.ShopName,
		CategoryID:  request.BusinessInfo.CategoryID,
		Description: request.BusinessInfo.Description,
		Country:     request.BusinessInfo.Country,
		ImageURL:    request.BusinessInfo.ShopImageURL,
		VideoURL:    request.BusinessInfo.ShopVideoURL,
		Status:      models.SellerStatusActive,
	}
	notif := &models.Notification{
		ID:     uuid.New().String(),
		UserID: request.UserID,
		Type:   models.NotificationSellerApproved,
		Title:  "Seller application approved",
		Body:   fmt.Sprintf("Your shop %s is now live.", shop.Name),
		Data: map[string]string{
			"requestId": request.ID,
			"sellerId":  profile.ID,
			"shopId":    shop.ID,
		},
	}

	if err := s.Sellers.ApproveRequestTransactionally(ctx, requestID, reviewerID, profile, shop, notif); err != nil {
		if errors.Is(err, sellerRepo.ErrRequestNotPending) {
			return nil, ErrRequestAlreadyFinalized
		}
		return nil, &ActivationFailedError{Cause: err}
	}

	// Committed. Everything below is fault-isolated.
	if err := s.Tasks.EnqueueEmail(models.EmailMessage{
		To:       request.ContactEmail(),
		Subject:  "Your seller application was approved",
		Template: models.EmailTemplateRequestApproved,
		Context: map[string]string{
			"name":     request.DisplayName(),
			"shopName": shop.Name,
		},
	}); err != nil {
		s.Logger.Error("failed to enqueue approval email",
			zap.String("requestId", requestID), zap.Error(err))
	}

	s.Logger.Info("seller request approved",
		zap.String("requestId", requestID),
		zap.String("reviewerId", reviewerID),
		zap.String("sellerId", profile.ID),
		zap.String("shopId", shop.ID),
		zap.String("userId", request.UserID),
	)

	return &ApprovalResult{
		SellerID: profile.ID,
		ShopID:   shop.ID,
		UserID:   request.UserID,
	}, nil
}

// RejectRequest finalizes a pending request as rejected. Re-finalizing an
// already approved or rejected request fails with ErrRequestAlreadyFinalized.
func (s *DefaultSellerService) RejectRequest(ctx context.Context, requestID, reviewerID, reason string) error {
	if reason == "" {
		return fmt.Errorf("a rejection reason is required")
	}

	request, err := s.Requests.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch seller request: %w", err)
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if err := s.Requests.Reject(requestID, reviewerID, reason); err != nil {
		switch {
		case errors.Is(err, sellerRequestRepo.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, sellerRequestRepo.ErrNotPending):
			return ErrRequestAlreadyFinalized
		}
		return fmt.Errorf("failed to reject seller request: %w", err)
	}

	if err := s.Notifications.Create(&models.Notification{
		ID:     uuid.New().String(),
		UserID: request.UserID,
		Type:   models.NotificationSellerRejected,
		Title:  "Seller application rejected",
		Body:   fmt.Sprintf("Your application was not approved: %s", reason),
		Data: map[string]string{
			"requestId": requestID,
		},
	}); err != nil {
		s.Logger.Error("failed to record rejection notification",
			zap.String("requestId", requestID), zap.Error(err))
	}

	if err := s.Tasks.EnqueueEmail(models.EmailMessage{
		To:       request.ContactEmail(),
		Subject:  "Your seller application was not approved",
		Template: models.EmailTemplateRequestRejected,
		Context: map[string]string{
			"name":   request.DisplayName(),
			"reason": reason,
		},
	}); err != nil {
		s.Logger.Error("failed to enqueue rejection email",
			zap.String("requestId", requestID), zap.Error(err))
	}

	s.Logger.Info("seller request rejected",
		zap.String("requestId", requestID),
		zap.String("reviewerId", reviewerID),
		zap.String("reason", reason),
	)
	return nil
}
