package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one WebSocket connection. Reads and writes run on separate
// goroutines; outgoing frames go through the buffered send channel so a
// slow consumer never blocks the hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	remote string

	gameID string
	seat   int

	writeTimeout time.Duration
	pongTimeout  time.Duration
}

func newClient(hub *Hub, conn *websocket.Conn, sendBuffer int, writeTimeout, pongTimeout time.Duration) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		remote:       conn.RemoteAddr().String(),
		seat:         SpectatorSeat,
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
	}
}

// sendReply marshals and queues one frame. Frames to a full buffer are
// dropped; the client can always re-request state.
func (c *Client) sendReply(r reply) {
	payload, err := json.Marshal(r)
	if err != nil {
		c.hub.logger.Error("failed to marshal reply",
			zap.String("type", r.Type), zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
		c.hub.logger.Warn("dropping frame to slow client",
			zap.String("remote", c.remote), zap.String("type", r.Type))
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongTimeout))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("read error", zap.String("remote", c.remote), zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.sendReply(reply{Type: msgError, Error: "malformed message"})
			continue
		}
		c.hub.handleMessage(c, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pongTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
