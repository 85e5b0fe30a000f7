package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
	"github.com/the3dsandwich/csci3100-grp31/internal/friends/domain"
	"github.com/the3dsandwich/csci3100-grp31/internal/friends/service"
)

type Handler struct {
	svc *service.FriendService
}

func New(svc *service.FriendService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) overview(c *gin.Context) {
	ov, err := h.svc.Overview(c.Request.Context(), auth.CallerUID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "friends": ov.Friends, "sent": ov.Sent, "received": ov.Received})
}

type sendReq struct {
	TargetUID string `json:"target_uid"`
}

func (h *Handler) sendRequest(c *gin.Context) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.SendRequest(c.Request.Context(), auth.CallerUID(c), req.TargetUID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *Handler) acceptRequest(c *gin.Context) {
	err := h.svc.AcceptRequest(c.Request.Context(), auth.CallerUID(c), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) withdrawRequest(c *gin.Context) {
	err := h.svc.WithdrawRequest(c.Request.Context(), auth.CallerUID(c), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) unfriend(c *gin.Context) {
	err := h.svc.Unfriend(c.Request.Context(), auth.CallerUID(c), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrSelfRequest):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrRequestExists), errors.Is(err, domain.ErrAlreadyFriends):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNoRequest):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
