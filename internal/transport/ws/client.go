// Package ws is the websocket transport collaborator: it feeds decoded
// server events into the session queue and sends gated actions
// outward. It never touches session state itself.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pollroom/internal/domain"
	"pollroom/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 65536

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is one WebSocket connection to the poll server
type Client struct {
	conn   *websocket.Conn
	queue  *session.Queue
	send   chan []byte
	done   chan struct{}
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// Dial connects to the server and returns a client ready to Run
func Dial(ctx context.Context, url string, queue *session.Queue, logger *slog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewClient(conn, queue, logger), nil
}

// NewClient wraps an established connection
func NewClient(conn *websocket.Conn, queue *session.Queue, logger *slog.Logger) *Client {
	return &Client{
		conn:   conn,
		queue:  queue,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Emit implements session.Emitter
func (c *Client) Emit(action domain.Action) error {
	data, err := json.Marshal(NewClientMessage(action))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrNotConnected
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, action dropped", "action", action.ActionType())
		return nil
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the write pump and blocks on the read pump until the
// connection drops. The disconnect is pushed into the queue so the
// machine falls back to AwaitingRegistration.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.Close()
		c.queue.Push(domain.Disconnected{})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage decodes one frame and hands the event to the queue
func (c *Client) handleMessage(data []byte) {
	event, err := DecodeServerMessage(data)
	if err != nil {
		c.logger.Warn("undecodable server message ignored", "error", err)
		return
	}
	c.queue.Push(event)
}
