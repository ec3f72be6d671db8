package handlers

import (
	"errors"
	"net/http"

	"sokoni/services/subscription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler exposes the subscription-based seller activation
// endpoints, including the public payment gateway callback.
type SubscriptionHandler struct {
	Service subscription.SubscriptionService
}

// InitiateHandler starts a subscription checkout and returns the payment
// URL the client must redirect to.
func (h *SubscriptionHandler) InitiateHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		PlanID       string `json:"planId" binding:"required"`
		BillingCycle string `json:"billingCycle" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sub, err := h.Service.Initiate(c.Request.Context(), userID, req.PlanID, req.BillingCycle)
	if err != nil {
		var initFailed *subscription.PaymentInitiationFailedError
		switch {
		case errors.Is(err, subscription.ErrInvalidBillingCycle):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, subscription.ErrSubscriptionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "A pending or active subscription already exists"})
		case errors.As(err, &initFailed):
			logger.Error("Payment initiation failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable, please try again"})
		default:
			logger.Error("Subscription initiation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate subscription"})
		}
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// GetCurrentHandler returns the caller's pending or active subscription.
func (h *SubscriptionHandler) GetCurrentHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.Service.GetCurrentForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription found"})
			return
		}
		logger.Error("Failed to fetch subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CallbackHandler processes gateway payment callbacks. The endpoint is
// public; the body is informational only and the outcome is always
// re-verified against the gateway.
func (h *SubscriptionHandler) CallbackHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		TransactionID string `json:"transactionId"`
	}
	// The body is optional and untrusted.
	_ = c.ShouldBindJSON(&req)

	err := h.Service.HandleCallback(c.Request.Context(), c.Param("subscriptionId"), req.TransactionID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		logger.Error("Subscription callback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process callback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "callback processed"})
}
