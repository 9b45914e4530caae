package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

const maxMessageSize = 4096

// client is one websocket connection. Writes may come from any goroutine;
// reads only from the connection's own handler.
type client struct {
	conn         *websocket.Conn
	uuid         string
	writeTimeout time.Duration
	mu           *sync.Mutex
	closed       *atomic.Bool
}

func newClient(conn *websocket.Conn, uuid string, writeTimeout time.Duration) *client {
	conn.SetReadLimit(maxMessageSize)
	return &client{
		conn:         conn,
		uuid:         uuid,
		writeTimeout: writeTimeout,
		mu:           &sync.Mutex{},
		closed:       atomic.NewBool(false),
	}
}

func (c *client) Uuid() string {
	return c.uuid
}

func (c *client) WriteMessage(msg domain.Message) error {
	if c.closed.Load() {
		return domain.ErrConnectionClosed
	}
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.WithMessage(err, "marshal message")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessagef(domain.ErrConnectionClosed, "websocket conn write: %v", err)
	}
	return nil
}

// ReadMessage blocks for the next message. Any failure of the connection
// itself is reported as domain.ErrConnectionClosed.
func (c *client) ReadMessage() (domain.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return domain.Message{}, errors.WithMessagef(domain.ErrConnectionClosed, "websocket conn read: %v", err)
	}
	var msg domain.Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		return domain.Message{}, errors.WithMessagef(domain.ErrBadRequest, "malformed message: %v", err)
	}
	return msg, nil
}

// keepAlive pings the peer until done is closed. Each pong extends the read
// deadline by pongWait, so a peer that stops answering fails the pending
// read. A non-positive pongWait disables it.
func (c *client) keepAlive(pongWait time.Duration, done <-chan struct{}) {
	if pongWait <= 0 {
		return
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	ticker := time.NewTicker(pongWait * 9 / 10)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pongWait)); err != nil {
					return
				}
			}
		}
	}()
}

func (c *client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		_ = c.conn.Close()
	}
}
