package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
	"github.com/the3dsandwich/csci3100-grp31/internal/chats/domain"
)

// StreamMessages streams new chat messages over Server-Sent Events (SSE).
// Clients that want sub-second latency attach Firestore snapshot listeners
// directly; this endpoint is the fallback for plain-HTTP consumers.
func (h *Handler) StreamMessages(c *gin.Context) {
	cid := c.Param("cid")
	uid := auth.CallerUID(c)

	// Membership is checked by the initial read; a non-participant never gets
	// a stream.
	initial, err := h.svc.Messages(c.Request.Context(), cid, uid, 100)
	if err != nil {
		if errors.Is(err, domain.ErrNotParticipant) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "access denied"})
			return
		}
		if errors.Is(err, domain.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	initialData, _ := json.Marshal(gin.H{"messages": initial})
	fmt.Fprintf(c.Writer, "event: initial\ndata: %s\n\n", string(initialData))
	flusher.Flush()

	lastSeen := time.Time{}
	if len(initial) > 0 {
		lastSeen = initial[len(initial)-1].CreatedAt
	}

	ctx := c.Request.Context()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	pollTicker := time.NewTicker(1 * time.Second)
	defer pollTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case <-pollTicker.C:
			fresh, err := h.svc.MessagesSince(ctx, cid, uid, lastSeen)
			if err != nil {
				errData, _ := json.Marshal(gin.H{"error": err.Error()})
				fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", string(errData))
				flusher.Flush()
				return
			}
			for _, m := range fresh {
				data, _ := json.Marshal(m)
				fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", string(data))
				if m.CreatedAt.After(lastSeen) {
					lastSeen = m.CreatedAt
				}
			}
			if len(fresh) > 0 {
				flusher.Flush()
			}
		}
	}
}
