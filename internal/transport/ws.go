// Package transport provides the websocket connection to a local VTube
// Studio instance.
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// closeGracePeriod bounds how long Close waits for the close handshake write.
const closeGracePeriod = time.Second

// Conn is a single websocket connection carrying one text frame per message.
// Receive must only be called from one goroutine at a time; Send is safe for
// concurrent use.
type Conn struct {
	ws *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Dial opens a websocket connection to the given URL. It fails immediately
// when the host is not reachable; there is no retry.
func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

// Send writes one text frame.
func (c *Conn) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	return nil
}

// Receive blocks until one complete frame arrives and returns its payload.
func (c *Conn) Receive() ([]byte, error) {
	_, payload, err := c.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("receive frame: %w", err)
	}
	return payload, nil
}

// Close performs a best-effort close handshake and tears down the socket.
// It is safe to call more than once and from any goroutine; it also unblocks
// a Receive that is in flight.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		deadline := time.Now().Add(closeGracePeriod)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		c.writeMu.Unlock()
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
