package http

import "github.com/gin-gonic/gin"

// Register attaches account and profile routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/account/bootstrap", h.bootstrap)
	rg.GET("/profiles/me", h.me)
	rg.PATCH("/profiles/me", h.update)
	rg.POST("/profiles/me/image", h.uploadImage)
	rg.GET("/profiles/:uid", h.byUID)
}
