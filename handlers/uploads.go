package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/editfolio/editfolio-backend/internal/auth"
	"github.com/editfolio/editfolio-backend/internal/storage"
	"github.com/editfolio/editfolio-backend/pkg/middleware"
)

// UploadHandler stores portfolio thumbnail images in the media bucket.
// The bucket is optional infrastructure; without it the endpoint reports
// itself unavailable rather than breaking the rest of the API.
type UploadHandler struct {
	media *storage.MediaStorage
	gate  *auth.Gate
}

func NewUploadHandler(media *storage.MediaStorage, gate *auth.Gate) *UploadHandler {
	return &UploadHandler{media: media, gate: gate}
}

// Register routes under /api/uploads
func (h *UploadHandler) Register(r *gin.Engine) {
	r.POST("/api/uploads/thumbnail", middleware.RequireAdmin(h.gate), h.Thumbnail)
}

func (h *UploadHandler) Thumbnail(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file field is required"})
		return
	}
	defer file.Close()

	key, err := h.media.UploadThumbnail(c.Request.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := h.media.ThumbnailURL(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build thumbnail url"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}
