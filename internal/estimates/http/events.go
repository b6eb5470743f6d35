package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/auth"
)

// streamEvents pushes the owner's sync events using Server-Sent Events,
// so other sessions learn that a project changed remotely.
func (h *Handler) streamEvents(c *gin.Context) {
	if h.events == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "event stream is not configured"})
		return
	}

	ctx := c.Request.Context()
	events, err := h.events.Subscribe(ctx, auth.OwnerID(c))
	if err != nil {
		writeError(c, "events.subscribe", err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}
	c.Status(http.StatusOK)
	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, _ := json.Marshal(ev)
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		}
	}
}
