package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/editfolio/editfolio-backend/internal/auth"
	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/mutation"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/pkg/middleware"
)

// ContentHandler serves the generic collection API: list, save, delete,
// plus the site-settings singleton. Reads are public; writes go through
// the permission gate, with reviews as the one publicly writable
// collection.
type ContentHandler struct {
	accessor *content.Accessor
	gate     *auth.Gate
}

func NewContentHandler(acc *content.Accessor, gate *auth.Gate) *ContentHandler {
	return &ContentHandler{accessor: acc, gate: gate}
}

// Register routes under /api
func (h *ContentHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/collections", h.ListCollections)
	api.GET("/collections/:name", h.Query)
	api.POST("/collections/:name", h.Save)
	api.DELETE("/collections/:name/:id", h.Delete)

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", middleware.RequireAdmin(h.gate), h.SaveSettings)
}

// ListCollections names every known collection.
func (h *ContentHandler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": content.Collections()})
}

// Query returns the full current contents of one collection.
func (h *ContentHandler) Query(c *gin.Context) {
	name := c.Param("name")
	records, err := h.accessor.Query(c.Request.Context(), name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": name, "documents": records})
}

// Save creates or updates one document. A record carrying an "id" field
// is merged into the existing document; without one a new document is
// created. Reviews accept public writes, everything else is admin-only.
func (h *ContentHandler) Save(c *gin.Context) {
	name := c.Param("name")
	if name != content.CollectionReviews && !h.gate.IsAdmin(auth.IdentityFromContext(c.Request.Context())) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
		return
	}

	var rec store.Fields
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w := mutation.NewWorkflow(h.accessor)
	if err := w.Edit(name, rec); err != nil {
		h.writeError(c, err)
		return
	}
	id, err := w.Submit(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete removes one document. The caller must pass confirm=true; an
// unconfirmed delete is refused, mirroring the dashboard's confirmation
// prompt.
func (h *ContentHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if !h.gate.IsAdmin(auth.IdentityFromContext(c.Request.Context())) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
		return
	}

	confirmed := c.Query("confirm") == "true"
	w := mutation.NewWorkflow(h.accessor)
	if err := w.Delete(c.Request.Context(), name, c.Param("id"), confirmed); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings returns the site settings singleton, defaults filled in.
func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.accessor.GetSiteSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings merges the payload into the settings singleton.
func (h *ContentHandler) SaveSettings(c *gin.Context) {
	var rec store.Fields
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.accessor.SaveSiteSettings(c.Request.Context(), rec); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) writeError(c *gin.Context, err error) {
	var verr *content.ValidationError
	switch {
	case errors.Is(err, content.ErrUnknownCollection):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, mutation.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrMissingID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save or delete"})
	}
}
