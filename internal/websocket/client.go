package websocket

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Connection timing. Pings go out before the peer's pong deadline expires.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Subscribers never send payloads, only control frames
	maxInboundSize = 512

	// Events queued per subscriber before it counts as lagging
	sendBuffer = 256
)

// ErrClientLagging is returned when a subscriber's queue is full
var ErrClientLagging = errors.New("client is not keeping up")

// Client is one dashboard subscribed to finance events over a WebSocket
type Client struct {
	id          string
	key         string
	connectedAt time.Time
	conn        *websocket.Conn
	hub         *Hub
	queue       chan []byte
	logger      zerolog.Logger

	delivered atomic.Int64
	dropped   atomic.Int64

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection. key identifies the caller the same way the
// rate limiter does (token fingerprint or ip).
func NewClient(conn *websocket.Conn, hub *Hub, key string) *Client {
	id := uuid.NewString()
	return &Client{
		id:          id,
		key:         key,
		connectedAt: time.Now(),
		conn:        conn,
		hub:         hub,
		queue:       make(chan []byte, sendBuffer),
		logger: log.Logger.With().
			Str("component", "ws").
			Str("client_id", id).
			Str("client_key", key).
			Logger(),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Key returns the caller identity the connection was opened with
func (c *Client) Key() string {
	return c.key
}

// Send queues an encoded event. A lagging subscriber loses the event rather than
// stalling the broadcast.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.queue <- data:
		return nil
	default:
		c.dropped.Add(1)
		return ErrClientLagging
	}
}

// Close shuts the connection down once; later calls are no-ops
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.queue)
		c.mu.Unlock()

		err = c.conn.Close()
		c.logger.Debug().
			Dur("connected_for", time.Since(c.connectedAt)).
			Int64("events_delivered", c.delivered.Load()).
			Int64("events_dropped", c.dropped.Load()).
			Msg("Subscriber disconnected")
	})
	return err
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ReadPump keeps the read side alive for pongs and the close handshake, and
// unregisters the subscriber when the peer goes away. Run it in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Subscriber closed unexpectedly")
			}
			return
		}
	}
}

// WritePump delivers queued events and keeps the connection alive with pings.
// Run it in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case event, ok := <-c.queue:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, event); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to deliver event")
				return
			}
			c.delivered.Add(1)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
