package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/editfolio/editfolio-backend/internal/relay"
)

// ContactHandler accepts contact-form submissions and fans them out to
// SMS and email. Nothing is persisted; a failed dispatch is simply a
// server error the caller can retry.
type ContactHandler struct {
	relay *relay.Relay
}

func NewContactHandler(r *relay.Relay) *ContactHandler {
	return &ContactHandler{relay: r}
}

// Register routes under /api
func (h *ContactHandler) Register(r *gin.Engine) {
	r.POST("/api/contact", h.Submit)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var sub relay.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.relay.Dispatch(c.Request.Context(), sub); err != nil {
		if errors.Is(err, relay.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not deliver message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
