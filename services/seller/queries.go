package seller

import (
	"context"
	"fmt"

	"sokoni/models"
)

// GetRequest retrieves a request by ID.
func (s *DefaultSellerService) GetRequest(ctx context.Context, requestID string) (*models.SellerRequest, error) {
	request, err := s.Requests.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// GetLatestRequestForUser retrieves the user's most recent application.
func (s *DefaultSellerService) GetLatestRequestForUser(ctx context.Context, userID string) (*models.SellerRequest, error) {
	request, err := s.Requests.GetLatestByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// ListRequestsByStatus lists applications in the given status.
func (s *DefaultSellerService) ListRequestsByStatus(ctx context.Context, status string) ([]models.SellerRequest, error) {
	return s.Requests.GetAllByStatus(status)
}

// GetSellerForUser retrieves the user's seller profile and its shop. The
// shop may be nil for sellers activated through subscription payment who
// have not opened one yet.
func (s *DefaultSellerService) GetSellerForUser(ctx context.Context, userID string) (*models.SellerProfile, *models.Shop, error) {
	profile, err := s.Sellers.GetByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch seller profile: %w", err)
	}
	if profile == nil {
		return nil, nil, ErrSellerNotFound
	}

	shop, err := s.Sellers.GetShopBySellerID(profile.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch shop: %w", err)
	}
	return profile, shop, nil
}
