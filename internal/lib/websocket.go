package lib

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Inbound messages are small pointer events and session configs.
	maxMessageSize   = 64 << 10
	defaultWriteWait = 10 * time.Second
)

// ThreadSafeWebSocket serialises writes to a websocket.Conn so the tick loop and the
// generation goroutine of a session can both send frames. gorilla allows one concurrent
// reader, so reads are not locked and must stay on a single goroutine.
// See https://pkg.go.dev/github.com/gorilla/websocket#hdr-Concurrency.
type ThreadSafeWebSocket struct {
	c         *websocket.Conn
	writeMu   *sync.Mutex
	writeWait time.Duration
}

func NewThreadSafeWebSocket(c *websocket.Conn) ThreadSafeWebSocket {
	c.SetReadLimit(maxMessageSize)
	return ThreadSafeWebSocket{c: c, writeMu: &sync.Mutex{}, writeWait: defaultWriteWait}
}

func (s ThreadSafeWebSocket) ReadMessage() (int, []byte, error) {
	return s.c.ReadMessage()
}

// WriteJSON marshals v and sends it as a single text message. A peer that stops
// reading fails the write after the write deadline instead of stalling the session.
func (s ThreadSafeWebSocket) WriteJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.c.SetWriteDeadline(time.Now().Add(s.writeWait)); err != nil {
		return err
	}
	return s.c.WriteJSON(v)
}

// Close sends a normal closure frame before closing the underlying connection.
func (s ThreadSafeWebSocket) Close() error {
	s.writeMu.Lock()
	_ = s.c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return s.c.Close()
}
