package main

import (
	"sync"

	"github.com/linkhive/socialgraph/common/logger"
)

// Hub maintains active WebSocket connections keyed by topic and
// broadcasts published events to every client attached to that topic.
type Hub struct {
	// Map: topic → set of clients
	subscriptions map[string]map[*Client]struct{}
	mutex         sync.RWMutex
	log           *logger.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
}

// Event is a published payload addressed to one topic
type Event struct {
	Topic string
	Data  []byte
}

// NewHub creates a new Hub instance
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*Client]struct{}),
		log:           log,
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan *Event, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	h.log.Info("hub started")

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastToTopic(event)
		}
	}
}

// registerClient attaches a client to each of its topics
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for topic := range client.topics {
		h.attach(client, topic)
	}

	h.log.Info("client registered", "topics", len(client.topics))
}

// Subscribe attaches an already-registered client to one more topic
func (h *Hub) Subscribe(client *Client, topic string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	client.topics[topic] = struct{}{}
	h.attach(client, topic)
}

// Unsubscribe detaches a client from one topic
func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	delete(client.topics, topic)
	h.detach(client, topic)
}

func (h *Hub) attach(client *Client, topic string) {
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]struct{})
	}
	h.subscriptions[topic][client] = struct{}{}
}

func (h *Hub) detach(client *Client, topic string) {
	clients := h.subscriptions[topic]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.subscriptions, topic)
	}
}

// unregisterClient removes a client from every topic it follows
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if client.closed {
		return
	}

	for topic := range client.topics {
		h.detach(client, topic)
	}
	client.closed = true
	close(client.send)

	h.log.Info("client unregistered")
}

// broadcastToTopic sends an event to every client attached to its topic
func (h *Hub) broadcastToTopic(event *Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	clients := h.subscriptions[event.Topic]
	if len(clients) == 0 {
		return
	}

	for client := range clients {
		select {
		case client.send <- event:
		default:
			// Slow consumer; drop the event rather than block the hub
			h.log.Warn("client send buffer full, dropping event", "topic", event.Topic)
		}
	}
}

// ConnectionCount returns the number of distinct attached clients
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	seen := make(map[*Client]struct{})
	for _, clients := range h.subscriptions {
		for client := range clients {
			seen[client] = struct{}{}
		}
	}
	return len(seen)
}

// TopicCount returns the number of topics with at least one subscriber
func (h *Hub) TopicCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscriptions)
}
