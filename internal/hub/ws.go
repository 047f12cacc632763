package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

// WSSink wraps a websocket connection as a Sink. Reads (client heartbeats)
// stay in the HTTP handler; only the send side lives here.
type WSSink struct {
	conn *websocket.Conn
}

func NewWSSink(conn *websocket.Conn) *WSSink {
	return &WSSink{conn: conn}
}

func (s *WSSink) Send(ev Event) error {
	s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteJSON(ev)
}

func (s *WSSink) Close() error {
	return s.conn.Close()
}
