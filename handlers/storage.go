package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"sokoni/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles seller document and media uploads. Uploaded
// files return a permanent URL that submissions embed in their document
// set.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// allowedBuckets defines permitted buckets for uploads.
var allowedBuckets = map[string]bool{
	"documents": true,
	"photos":    true,
	"contracts": true,
	"images":    true,
	"videos":    true,
}

// UploadFileHandler handles a multipart file upload into a bucket.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'documents', 'photos', 'contracts', 'images' and 'videos'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	userID, _ := currentUserID(c)
	destFolder := "sellers/" + userID + "/" + bucket

	url, err := h.StorageSvc.UploadFile(c, tempFilePath, destFolder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "file uploaded successfully",
		"url":     url,
	})
}
