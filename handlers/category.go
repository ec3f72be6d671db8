package handlers

import (
	"net/http"
	"strings"

	categoryRepo "sokoni/database/repository/category"
	"sokoni/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryHandler exposes the business category catalog.
type CategoryHandler struct {
	Repo categoryRepo.CategoryRepository
}

// ListHandler returns all business categories.
func (h *CategoryHandler) ListHandler(c *gin.Context) {
	logger := getLogger(c)

	categories, err := h.Repo.GetAll()
	if err != nil {
		logger.Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateHandler adds a new business category for admins.
func (h *CategoryHandler) CreateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	category := &models.Category{
		ID:   uuid.New().String(),
		Name: req.Name,
		Slug: strings.ToLower(strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "-")),
	}
	if err := h.Repo.Create(category); err != nil {
		logger.Error("Failed to create category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}
