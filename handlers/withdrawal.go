package handlers

import (
	"errors"
	"net/http"

	"sokoni/models"
	"sokoni/services/withdrawal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WithdrawalHandler exposes seller payout endpoints and the admin status
// workflow.
type WithdrawalHandler struct {
	Service withdrawal.WithdrawalService
}

// RequestHandler creates a pending withdrawal for the caller's seller
// profile.
func (h *WithdrawalHandler) RequestHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Amount   float64         `json:"amount" binding:"required"`
		Currency string          `json:"currency" binding:"required"`
		BankInfo models.BankInfo `json:"bankInfo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	w, err := h.Service.Request(c.Request.Context(), userID, req.Amount, req.Currency, req.BankInfo)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrSellerNotFound):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers can request withdrawals"})
		case errors.Is(err, withdrawal.ErrInvalidAmount),
			errors.Is(err, withdrawal.ErrBankInfoIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Withdrawal request failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal"})
		}
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListMineHandler lists the caller's withdrawals, newest first.
func (h *WithdrawalHandler) ListMineHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	withdrawals, err := h.Service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, withdrawal.ErrSellerNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers can view withdrawals"})
			return
		}
		logger.Error("Failed to list withdrawals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// ListAllHandler lists every withdrawal for admins.
func (h *WithdrawalHandler) ListAllHandler(c *gin.Context) {
	logger := getLogger(c)

	withdrawals, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list withdrawals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// GetHandler fetches a single withdrawal for admins.
func (h *WithdrawalHandler) GetHandler(c *gin.Context) {
	logger := getLogger(c)

	w, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, withdrawal.ErrWithdrawalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
			return
		}
		logger.Error("Failed to fetch withdrawal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// UpdateStatusHandler transitions a withdrawal for admins. Moving into
// processing issues the payout transfer.
func (h *WithdrawalHandler) UpdateStatusHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	w, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		var transferFailed *withdrawal.TransferFailedError
		switch {
		case errors.Is(err, withdrawal.ErrWithdrawalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		case errors.Is(err, withdrawal.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, withdrawal.ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal has already been finalized"})
		case errors.As(err, &transferFailed):
			logger.Error("Payout transfer failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payout provider unavailable, please try again"})
		default:
			logger.Error("Withdrawal status update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update withdrawal"})
		}
		return
	}
	c.JSON(http.StatusOK, w)
}
