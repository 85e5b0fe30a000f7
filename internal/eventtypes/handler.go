package eventtypes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the event-type catalog for event creation forms.
type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/event-types", h.list)
}

func (h *Handler) list(c *gin.Context) {
	types, err := h.catalog.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] list event types: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list event types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "eventTypes": types})
}
