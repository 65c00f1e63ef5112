package api

import (
	"fmt"
	"net/http"

	"vitacare/health-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// DocumentHandler issues presigned URLs for health document uploads and
// downloads. The API never touches the document bytes.
type DocumentHandler struct {
	fileStorage storage.FileStorage
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(fileStorage storage.FileStorage) *DocumentHandler {
	return &DocumentHandler{fileStorage: fileStorage}
}

type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type UploadURLResponse struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
}

// CreateUploadURL mints an object key for a new health document and
// returns a presigned PUT URL for it. The client stores the returned key
// on the record that references the document (e.g. a health score's
// uploaded_files).
func (h *DocumentHandler) CreateUploadURL(c *gin.Context) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	objectKey := storage.DocumentKey(userIDStr, req.Filename)
	url, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		ObjectKey: objectKey,
		UploadURL: url,
	})
}

// CreateDownloadURL returns a presigned GET URL for the object key given
// in the "key" query parameter. Keys are slash-separated so they travel
// as a query value rather than a path segment.
func (h *DocumentHandler) CreateDownloadURL(c *gin.Context) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "key query parameter is required")
		return
	}
	// Users may only fetch documents inside their own namespace.
	ownPrefix := fmt.Sprintf("health-documents/%s/", userIDStr)
	if len(objectKey) <= len(ownPrefix) || objectKey[:len(ownPrefix)] != ownPrefix {
		abortWithError(c, http.StatusForbidden, "Access denied: document belongs to another user")
		return
	}

	url, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
