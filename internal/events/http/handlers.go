package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
	"github.com/the3dsandwich/csci3100-grp31/internal/events/domain"
	"github.com/the3dsandwich/csci3100-grp31/internal/events/service"
	profiledomain "github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

type Handler struct {
	svc *service.EventService
}

func New(svc *service.EventService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	AllowedPeople int    `json:"allowedPeople"`
	EventName     string `json:"eventName"`
	EventType     string `json:"eventType"`
	IsPublic      *bool  `json:"isPublic"`
	Location      string `json:"location"`
	// Milliseconds since the Unix epoch, the format the web client submits.
	StartingTime int64 `json:"startingTime"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublic == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	eid, err := h.svc.Create(c.Request.Context(), auth.CallerUID(c), service.CreateEventInput{
		AllowedPeople: req.AllowedPeople,
		EventName:     req.EventName,
		EventType:     req.EventType,
		IsPublic:      *req.IsPublic,
		Location:      req.Location,
		StartingTime:  time.UnixMilli(req.StartingTime),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "eid": eid})
}

func (h *Handler) get(c *gin.Context) {
	ev, err := h.svc.Get(c.Request.Context(), c.Param("eid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "event": ev})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.svc.ListPublicUpcoming(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": items})
}

type joinReq struct {
	Status string `json:"status"`
}

func (h *Handler) join(c *gin.Context) {
	var req joinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.AddParticipant(c.Request.Context(), c.Param("eid"), auth.CallerUID(c), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) participants(c *gin.Context) {
	items, err := h.svc.Participants(c.Request.Context(), c.Param("eid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "participants": items})
}

func (h *Handler) myEvents(c *gin.Context) {
	items, err := h.svc.ListUserEvents(c.Request.Context(), auth.CallerUID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": items})
}

func (h *Handler) refreshMirrors(c *gin.Context) {
	eid := c.Param("eid")

	ev, err := h.svc.Get(c.Request.Context(), eid)
	if err != nil {
		writeError(c, err)
		return
	}
	if ev.HostUID != auth.CallerUID(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "only the host can refresh mirrors"})
		return
	}

	n, err := h.svc.RefreshMirrors(c.Request.Context(), eid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "refreshed": n})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, profiledomain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
