package http

import "github.com/gin-gonic/gin"

// Register attaches chat routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/chats/:cid", h.get)
	rg.POST("/chats/:cid/participants", h.join)
	rg.GET("/chats/:cid/participants", h.participants)
	rg.GET("/chats/:cid/messages", h.messages)
	rg.POST("/chats/:cid/messages", h.send)
	rg.GET("/chats/:cid/stream", h.StreamMessages)
	rg.GET("/me/chats", h.myChats)
}
