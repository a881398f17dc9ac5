package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketChannel implements Channel over a gorilla/websocket connection,
// carrying JSON text frames. Writes are serialized by writeMu, since
// gorilla/websocket forbids concurrent writers on the same connection; reads
// are not locked, so Receive must have at most one caller at a time.
type WebSocketChannel struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// WebSocketDialer opens WebSocketChannels against a backend URL.
type WebSocketDialer struct {
	Header http.Header
}

// Dial connects to url and returns a ready Channel.
func (d WebSocketDialer) Dial(ctx context.Context, url string) (Channel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, d.Header)
	if err != nil {
		return nil, err
	}
	return &WebSocketChannel{conn: conn}, nil
}

// Send marshals v as JSON and writes it as a single text frame.
func (c *WebSocketChannel) Send(ctx context.Context, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Receive blocks for the next inbound text frame and unmarshals it into v.
func (c *WebSocketChannel) Receive(ctx context.Context, v interface{}) error {
	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, v)
}

// Close closes the underlying connection.
func (c *WebSocketChannel) Close() error {
	return c.conn.Close()
}
