package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

// UploadImage stores a menu photo and returns the URL to put in the
// item's image field
func (h *Handler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file received"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalError(c, "Failed to read upload", err)
		return
	}
	defer file.Close()

	url, err := h.images.Upload(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		internalError(c, "Failed to upload image", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
