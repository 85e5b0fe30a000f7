package http

import "github.com/gin-gonic/gin"

// Register attaches friend-graph routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/friends", h.overview)
	rg.POST("/friends/requests", h.sendRequest)
	rg.POST("/friends/requests/:uid/accept", h.acceptRequest)
	rg.DELETE("/friends/requests/:uid", h.withdrawRequest)
	rg.DELETE("/friends/:uid", h.unfriend)
}
