package handlers

import (
	"errors"
	"net/http"

	"sokoni/models"
	"sokoni/services/seller"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SellerHandler exposes the seller onboarding endpoints: application
// submission for users and the review workflow for admins.
type SellerHandler struct {
	Service seller.SellerService
}

// SubmitRequestHandler handles a new seller application.
func (h *SellerHandler) SubmitRequestHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.UserID = userID

	created, err := h.Service.SubmitRequest(c.Request.Context(), req)
	if err != nil {
		var missing *seller.MissingDocumentsError
		switch {
		case errors.Is(err, seller.ErrDuplicateRequest):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missingDocuments": missing.Fields})
		case errors.Is(err, seller.ErrComplianceIncomplete),
			errors.Is(err, seller.ErrInvalidCategory),
			errors.Is(err, seller.ErrInvalidRequestType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Seller request submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMyRequestHandler returns the caller's most recent application.
func (h *SellerHandler) GetMyRequestHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.Service.GetLatestRequestForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, seller.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No seller request found"})
			return
		}
		logger.Error("Failed to fetch seller request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch request"})
		return
	}
	c.JSON(http.StatusOK, request)
}

// GetMyProfileHandler returns the caller's seller profile with its shop.
func (h *SellerHandler) GetMyProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, shop, err := h.Service.GetSellerForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, seller.ErrSellerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seller profile not found"})
			return
		}
		logger.Error("Failed to fetch seller profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "shop": shop})
}

// ListRequestsHandler lists applications by status for admins. Defaults to
// pending.
func (h *SellerHandler) ListRequestsHandler(c *gin.Context) {
	logger := getLogger(c)

	status := c.DefaultQuery("status", models.RequestStatusPending)
	requests, err := h.Service.ListRequestsByStatus(c.Request.Context(), status)
	if err != nil {
		logger.Error("Failed to list seller requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetRequestHandler fetches a single application for admins.
func (h *SellerHandler) GetRequestHandler(c *gin.Context) {
	logger := getLogger(c)

	request, err := h.Service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, seller.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seller request not found"})
			return
		}
		logger.Error("Failed to fetch seller request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch request"})
		return
	}
	c.JSON(http.StatusOK, request)
}

// ReviewRequestHandler finalizes a pending application as approved or
// rejected.
func (h *SellerHandler) ReviewRequestHandler(c *gin.Context) {
	logger := getLogger(c)

	reviewerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Status          string `json:"status" binding:"required"`
		RejectionReason string `json:"rejectionReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	requestID := c.Param("id")

	switch req.Status {
	case models.RequestStatusApproved:
		result, err := h.Service.ApproveRequest(c.Request.Context(), requestID, reviewerID)
		if err != nil {
			h.reviewError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case models.RequestStatusRejected:
		if req.RejectionReason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rejectionReason is required"})
			return
		}
		if err := h.Service.RejectRequest(c.Request.Context(), requestID, reviewerID, req.RejectionReason); err != nil {
			h.reviewError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "request rejected"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'approved' or 'rejected'"})
	}
}

func (h *SellerHandler) reviewError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, seller.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller request not found"})
	case errors.Is(err, seller.ErrRequestAlreadyFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Request has already been reviewed"})
	default:
		logger.Error("Seller request review failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review request"})
	}
}
