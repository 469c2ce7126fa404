package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/internal/subscription"
	"github.com/editfolio/editfolio-backend/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveHandler streams full collection snapshots over a websocket. The
// client gets the current state immediately on connect and a fresh
// snapshot after every change, with no diffing and no polling.
type LiveHandler struct {
	coordinator *subscription.Coordinator
}

func NewLiveHandler(c *subscription.Coordinator) *LiveHandler {
	return &LiveHandler{coordinator: c}
}

// Register mounts the stream endpoint next to the collection routes.
func (h *LiveHandler) Register(r *gin.Engine) {
	r.GET("/api/collections/:name/live", h.Stream)
}

type snapshotMessage struct {
	Collection string         `json:"collection"`
	Documents  []store.Fields `json:"documents"`
}

// Stream upgrades the connection and pumps snapshots until the client
// goes away. Closing the socket tears the feed down immediately.
func (h *LiveHandler) Stream(c *gin.Context) {
	name := c.Param("name")
	if _, ok := content.SchemaFor(name); !ok && name != content.SettingsCollection {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	feed, err := h.coordinator.Open(name)
	if err != nil {
		conn.Close()
		return
	}

	done := make(chan struct{})

	// reader: only pong/close traffic is expected from the client
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		feed.Close()
		conn.Close()
	}()

	for {
		select {
		case snap, ok := <-feed.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snapshotMessage{Collection: name, Documents: snap}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
