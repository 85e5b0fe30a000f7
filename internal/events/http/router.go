package http

import "github.com/gin-gonic/gin"

// Register attaches event routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/events", h.create)
	rg.GET("/events", h.list)
	rg.GET("/events/:eid", h.get)
	rg.GET("/events/:eid/participants", h.participants)
	rg.POST("/events/:eid/participants", h.join)
	rg.POST("/events/:eid/refresh-mirrors", h.refreshMirrors)
	rg.GET("/me/events", h.myEvents)
}
