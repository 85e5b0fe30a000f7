package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
	"github.com/the3dsandwich/csci3100-grp31/internal/chats/domain"
	"github.com/the3dsandwich/csci3100-grp31/internal/chats/service"
	profiledomain "github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

type Handler struct {
	svc *service.ChatService
}

func New(svc *service.ChatService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) get(c *gin.Context) {
	ch, err := h.svc.Get(c.Request.Context(), c.Param("cid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chat": ch})
}

func (h *Handler) join(c *gin.Context) {
	err := h.svc.AddParticipant(c.Request.Context(), c.Param("cid"), auth.CallerUID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) participants(c *gin.Context) {
	items, err := h.svc.Participants(c.Request.Context(), c.Param("cid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "participants": items})
}

func (h *Handler) messages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	items, err := h.svc.Messages(c.Request.Context(), c.Param("cid"), auth.CallerUID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": items})
}

type sendReq struct {
	Text string `json:"text"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	mid, err := h.svc.SendMessage(c.Request.Context(), c.Param("cid"), auth.CallerUID(c), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "mid": mid})
}

func (h *Handler) myChats(c *gin.Context) {
	items, err := h.svc.ListUserChats(c.Request.Context(), auth.CallerUID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chats": items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrChatNotFound), errors.Is(err, profiledomain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
