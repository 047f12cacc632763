package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/hub"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

// StreamHandler binds the two subscription transports (SSE push stream and
// WebSocket) onto the broadcast hub. Both deliver the same feed: an initial
// full-state snapshot, then incremental events and periodic heartbeats.
type StreamHandler struct {
	log      *zap.Logger
	store    *store.Store
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewStreamHandler(log *zap.Logger, st *store.Store, h *hub.Hub) *StreamHandler {
	return &StreamHandler{
		log:   log,
		store: st,
		hub:   h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Cookie-based auth; the display board may be embedded anywhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// clientIdentity derives the connection's type and judge id from the query
// and session. Unauthenticated clients subscribe as displays.
func (h *StreamHandler) clientIdentity(c *gin.Context) (hub.ClientType, string) {
	session := sessions.Default(c)
	role, _ := session.Get(SessionRoleKey).(string)
	switch role {
	case RoleAdmin:
		return hub.ClientAdmin, ""
	case RoleJudge:
		judgeID, _ := session.Get(SessionJudgeIDKey).(string)
		return hub.ClientJudge, judgeID
	default:
		return hub.ClientDisplay, ""
	}
}

// Subscribe opens a one-way SSE stream. The connection stays registered
// until the client disconnects or misses its heartbeats.
func (h *StreamHandler) Subscribe(c *gin.Context) {
	typ, judgeID := h.clientIdentity(c)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	sink, err := hub.NewSSESink(c.Writer)
	if err != nil {
		h.log.Error("SSE not supported by response writer", zap.Error(err))
		return
	}

	id := h.hub.Register(typ, judgeID, sink)
	h.hub.SendTo(id, hub.EventSnapshot, gin.H{
		"connectionId": id,
		"state":        h.store.ClientSnapshot(),
	})

	// Block until the client goes away; transport-level abort deregisters
	// the connection synchronously.
	<-c.Request.Context().Done()
	h.hub.Unregister(id)
}

// wsClientMessage is what clients send over the socket; only heartbeats
// are meaningful today.
type wsClientMessage struct {
	Type string `json:"type"`
}

// SubscribeWS offers the same subscription semantics over a persistent
// duplex socket. Client heartbeats arrive as frames instead of separate
// HTTP pings.
func (h *StreamHandler) SubscribeWS(c *gin.Context) {
	typ, judgeID := h.clientIdentity(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	id := h.hub.Register(typ, judgeID, hub.NewWSSink(conn))
	h.hub.SendTo(id, hub.EventSnapshot, gin.H{
		"connectionId": id,
		"state":        h.store.ClientSnapshot(),
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.hub.Unregister(id)
			return
		}
		var msg wsClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == hub.EventHeartbeat {
			h.hub.Heartbeat(id)
		}
	}
}

// Heartbeat refreshes an SSE connection's liveness; SSE is one-way, so the
// ping arrives as a plain POST.
func (h *StreamHandler) Heartbeat(c *gin.Context) {
	h.hub.Heartbeat(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Connections returns the online view for the operator console.
func (h *StreamHandler) Connections(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Connections())
}

// Snapshot serves the full state for clients re-syncing after a dropped
// stream.
func (h *StreamHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ClientSnapshot())
}
