// Package pubsub provides the per-topic event channel used by the
// fan-out service: a Publisher abstraction with Redis, Kafka and
// in-memory backends, plus the async dispatcher that decouples topic
// publishing from the request path.
package pubsub

import (
	"context"
	"sync"

	"github.com/linkhive/socialgraph/common/logger"
)

// Publisher sends a payload to a named topic. Delivery is best-effort
// and at-most-once per call; no acknowledgment is expected.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}

// Handler processes a message delivered on a topic.
type Handler func(topic string, payload []byte)

// MemoryBroker is an in-process Publisher for tests and single-node
// development. Delivery to subscribers is synchronous inside Publish,
// which preserves per-topic ordering.
type MemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	patterns    []patternSub
	log         *logger.Logger
	closed      bool
}

type patternSub struct {
	prefix  string
	handler Handler
}

// NewMemoryBroker creates a new in-memory broker
func NewMemoryBroker(log *logger.Logger) *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[string][]Handler),
		log:         log,
	}
}

// Publish delivers the payload to every subscriber of the topic
func (b *MemoryBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, h := range b.subscribers[topic] {
		h(topic, payload)
	}
	for _, p := range b.patterns {
		if len(topic) >= len(p.prefix) && topic[:len(p.prefix)] == p.prefix {
			p.handler(topic, payload)
		}
	}
	return nil
}

// Subscribe registers a handler for an exact topic
func (b *MemoryBroker) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], handler)
}

// SubscribePrefix registers a handler for every topic under a prefix,
// e.g. "posts/" for all per-post topics.
func (b *MemoryBroker) SubscribePrefix(prefix string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.patterns = append(b.patterns, patternSub{prefix: prefix, handler: handler})
}

// Close marks the broker closed; further publishes are dropped
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subscribers = make(map[string][]Handler)
	b.patterns = nil
	if b.log != nil {
		b.log.Info("memory broker closed")
	}
	return nil
}
