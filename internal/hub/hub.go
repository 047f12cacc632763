// Package hub fans state-change events out to every live client channel.
// The hub only ever talks to the Sink interface; SSE and WebSocket
// transports are adapters over it. Delivery is best-effort: a failed or
// slow connection is dropped, never allowed to block the others.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientType string

const (
	ClientAdmin   ClientType = "admin"
	ClientJudge   ClientType = "judge"
	ClientDisplay ClientType = "display"
)

// Event is one state-change notification.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

const (
	EventHeartbeat = "heartbeat"
	EventSnapshot  = "snapshot"
)

// Sink is one client channel's send side. Send may be called from the
// connection's delivery goroutine only; Close must be safe to call more
// than once.
type Sink interface {
	Send(Event) error
	Close() error
}

type connection struct {
	id        string
	clientTyp ClientType
	judgeID   string
	sink      Sink
	queue     chan Event
	done      chan struct{}
	closeOnce sync.Once

	connectedAt   time.Time
	lastHeartbeat time.Time // guarded by Hub.mu
}

// ConnectionInfo is the "who is online" view of one connection.
type ConnectionInfo struct {
	ID            string     `json:"id"`
	Type          ClientType `json:"type"`
	JudgeID       string     `json:"judgeId,omitempty"`
	ConnectedAt   time.Time  `json:"connectedAt"`
	LastHeartbeat time.Time  `json:"lastHeartbeat"`
}

// Hub is the connection registry and event fan-out.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*connection

	log           *zap.Logger
	heartbeatTick time.Duration
	staleAfter    time.Duration
	queueSize     int

	now func() time.Time
}

func New(log *zap.Logger, heartbeatTick, staleAfter time.Duration, queueSize int) *Hub {
	if heartbeatTick <= 0 {
		heartbeatTick = 30 * time.Second
	}
	if staleAfter <= 0 {
		staleAfter = 60 * time.Second
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Hub{
		conns:         make(map[string]*connection),
		log:           log,
		heartbeatTick: heartbeatTick,
		staleAfter:    staleAfter,
		queueSize:     queueSize,
		now:           time.Now,
	}
}

// Register adds a connection and starts its delivery loop. The returned id
// is used for heartbeats and removal.
func (h *Hub) Register(typ ClientType, judgeID string, sink Sink) string {
	now := h.now()
	conn := &connection{
		id:            uuid.NewString(),
		clientTyp:     typ,
		judgeID:       judgeID,
		sink:          sink,
		queue:         make(chan Event, h.queueSize),
		done:          make(chan struct{}),
		connectedAt:   now,
		lastHeartbeat: now,
	}

	h.mu.Lock()
	h.conns[conn.id] = conn
	total := len(h.conns)
	h.mu.Unlock()

	go h.deliver(conn)

	h.log.Info("Client connected",
		zap.String("connectionID", conn.id),
		zap.String("type", string(typ)),
		zap.Int("connections", total))
	return conn.id
}

// deliver drains one connection's queue onto its sink. A send failure
// removes the connection; nobody else is affected.
func (h *Hub) deliver(conn *connection) {
	for {
		select {
		case <-conn.done:
			return
		case ev := <-conn.queue:
			if err := conn.sink.Send(ev); err != nil {
				h.log.Debug("Dropping connection after send failure",
					zap.String("connectionID", conn.id), zap.Error(err))
				h.Unregister(conn.id)
				return
			}
		}
	}
}

// Unregister removes a connection and closes its sink. Safe to call for an
// already-removed id and safe to race with an in-flight delivery.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	conn, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	total := len(h.conns)
	h.mu.Unlock()
	if !ok {
		return
	}

	conn.closeOnce.Do(func() {
		close(conn.done)
		if err := conn.sink.Close(); err != nil {
			h.log.Debug("Sink close failed", zap.String("connectionID", id), zap.Error(err))
		}
	})
	h.log.Info("Client disconnected",
		zap.String("connectionID", id),
		zap.Int("connections", total))
}

// Heartbeat refreshes a connection's liveness timestamp. Unknown ids are
// ignored; the client will find out when its stream drops.
func (h *Hub) Heartbeat(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[id]; ok {
		conn.lastHeartbeat = h.now()
	}
}

// Publish enqueues an event for every registered connection. A connection
// whose queue is full is dropped rather than allowed to stall the rest.
func (h *Hub) Publish(eventType string, payload any) {
	ev := Event{Type: eventType, Payload: payload, At: h.now()}

	h.mu.RLock()
	var full []string
	for id, conn := range h.conns {
		select {
		case conn.queue <- ev:
		default:
			full = append(full, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range full {
		h.log.Warn("Dropping slow subscriber", zap.String("connectionID", id),
			zap.String("event", eventType))
		h.Unregister(id)
	}
}

// SendTo enqueues an event for a single connection, e.g. the initial
// snapshot right after subscribing.
func (h *Hub) SendTo(id, eventType string, payload any) {
	h.mu.RLock()
	conn, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case conn.queue <- Event{Type: eventType, Payload: payload, At: h.now()}:
	default:
		h.log.Warn("Dropping slow subscriber", zap.String("connectionID", id),
			zap.String("event", eventType))
		h.Unregister(id)
	}
}

// Connections returns the online view, in no particular order.
func (h *Hub) Connections() []ConnectionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]ConnectionInfo, 0, len(h.conns))
	for _, conn := range h.conns {
		out = append(out, ConnectionInfo{
			ID:            conn.id,
			Type:          conn.clientTyp,
			JudgeID:       conn.judgeID,
			ConnectedAt:   conn.connectedAt,
			LastHeartbeat: conn.lastHeartbeat,
		})
	}
	return out
}

// Run drives the periodic server heartbeat and the stale-connection reaper
// until ctx is cancelled. Call it in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("Starting broadcast hub",
		zap.Duration("heartbeatInterval", h.heartbeatTick),
		zap.Duration("staleTimeout", h.staleAfter))

	ticker := time.NewTicker(h.heartbeatTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.Publish(EventHeartbeat, nil)
			h.reapStale()
		}
	}
}

// reapStale disconnects every connection whose client-driven heartbeat is
// older than the stale threshold. This bounds the registry even when a
// client vanishes without a clean close.
func (h *Hub) reapStale() {
	cutoff := h.now().Add(-h.staleAfter)

	h.mu.RLock()
	var stale []string
	for id, conn := range h.conns {
		if conn.lastHeartbeat.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range stale {
		h.log.Info("Reaping stale connection", zap.String("connectionID", id))
		h.Unregister(id)
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	for _, id := range ids {
		h.Unregister(id)
	}
}
