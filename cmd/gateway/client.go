package main

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 30 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 25 * time.Second

	// Maximum control-frame size accepted from the peer
	maxMessageSize = 1024
)

// Client represents one WebSocket connection and the topics it follows
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	topics map[string]struct{}
	send   chan *Event
	closed bool
}

// NewClient creates a new Client following the given topics
func NewClient(hub *Hub, conn *websocket.Conn, topics []string) *Client {
	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		set[t] = struct{}{}
	}
	return &Client{
		hub:    hub,
		conn:   conn,
		topics: set,
		send:   make(chan *Event, 512),
	}
}

// controlFrame is the only message clients send: subscribe to or leave
// a topic after the initial handshake.
type controlFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// envelope is the frame pushed to clients
type envelope struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// readPump consumes control frames and detects disconnects
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket error", "error", err)
			}
			break
		}

		var frame controlFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Topic == "" {
			continue
		}

		switch frame.Action {
		case "subscribe":
			c.hub.Subscribe(c, frame.Topic)
		case "unsubscribe":
			c.hub.Unsubscribe(c, frame.Topic)
		}
	}
}

// writePump pushes events from the hub to the WebSocket connection.
// Each event goes out as its own text frame so clients can parse each
// JSON object individually.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.writeEvent(event); err != nil {
				return
			}

			// Drain any queued events as separate frames
			n := len(c.send)
			for i := 0; i < n; i++ {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.writeEvent(<-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeEvent(event *Event) error {
	frame, err := json.Marshal(&envelope{Topic: event.Topic, Data: event.Data})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}
