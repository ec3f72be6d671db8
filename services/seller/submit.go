package seller

import (
	"context"
	"fmt"

	"sokoni/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitRequest validates the application and persists it as pending. The
// confirmation email is enqueued best-effort after the write; a mail-side
// failure never fails the submission.
func (s *DefaultSellerService) SubmitRequest(ctx context.Context, request models.SellerRequest) (*models.SellerRequest, error) {
	if request.UserID == "" {
		return nil, fmt.Errorf("seller request requires a user id")
	}
	if !personalInfoMatchesType(&request) {
		return nil, ErrInvalidRequestType
	}
	if !complianceComplete(request.Compliance) {
		return nil, ErrComplianceIncomplete
	}
	if request.BusinessInfo.ShopName == "" {
		return nil, fmt.Errorf("seller request requires a shop name")
	}

	exists, err := s.Categories.Exists(request.BusinessInfo.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	if !exists {
		return nil, ErrInvalidCategory
	}

	if missing := missingDocuments(request.Type, request.Documents); len(missing) > 0 {
		return nil, &MissingDocumentsError{Fields: missing}
	}

	existing, err := s.Requests.GetActiveByUserID(request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing request: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	request.ID = uuid.New().String()
	request.Status = models.RequestStatusPending
	request.RejectionReason = ""
	request.ReviewedBy = ""
	request.ReviewedAt = nil

	if err := s.Requests.Create(&request); err != nil {
		return nil, fmt.Errorf("failed to create seller request: %w", err)
	}

	if err := s.Tasks.EnqueueEmail(models.EmailMessage{
		To:       request.ContactEmail(),
		Subject:  "We received your seller application",
		Template: models.EmailTemplateRequestReceived,
		Context: map[string]string{
			"name":     request.DisplayName(),
			"shopName": request.BusinessInfo.ShopName,
		},
	}); err != nil {
		s.Logger.Error("failed to enqueue confirmation email",
			zap.String("requestId", request.ID), zap.Error(err))
	}

	s.Logger.Info("seller request submitted",
		zap.String("requestId", request.ID),
		zap.String("userId", request.UserID),
		zap.String("type", request.Type),
	)
	return &request, nil
}
