package pubsub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/linkhive/socialgraph/common/logger"
)

const publishTimeout = 5 * time.Second

// Dispatcher decouples topic publishing from the request path: callers
// enqueue after their transaction commits and a single worker drains
// the queue in order, so the commit always happens before the publish
// and no lock is held across a publish. Publish failures are logged,
// never returned to the enqueuer.
type Dispatcher struct {
	pub Publisher
	log *logger.Logger

	mu     sync.RWMutex
	jobs   chan publishJob
	closed bool

	inflight sync.WaitGroup
	done     chan struct{}
}

type publishJob struct {
	topic   string
	payload []byte
}

// NewDispatcher creates a dispatcher and starts its worker
func NewDispatcher(pub Publisher, log *logger.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 1024
	}

	d := &Dispatcher{
		pub:  pub,
		log:  log,
		jobs: make(chan publishJob, buffer),
		done: make(chan struct{}),
	}

	go d.run()
	return d
}

// Enqueue queues a publish of the JSON encoding of payload. It never
// blocks the caller: when the buffer is full the event is dropped with
// a warning (delivery is best-effort).
func (d *Dispatcher) Enqueue(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		d.log.Error("event payload marshal failed", "topic", topic, "error", err)
		return
	}
	d.EnqueueRaw(topic, data)
}

// EnqueueRaw queues a publish of an already-encoded payload
func (d *Dispatcher) EnqueueRaw(topic string, payload []byte) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("dispatcher closed, dropping event", "topic", topic)
		return
	}

	d.inflight.Add(1)
	select {
	case d.jobs <- publishJob{topic: topic, payload: payload}:
	default:
		d.inflight.Done()
		d.log.Warn("publish buffer full, dropping event", "topic", topic)
	}
}

// Flush blocks until every enqueued event has been handed to the
// publisher. Used by tests and during shutdown.
func (d *Dispatcher) Flush() {
	d.inflight.Wait()
}

// Close flushes pending events and stops the worker
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.inflight.Wait()
	close(d.jobs)
	<-d.done
	return nil
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for job := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := d.pub.Publish(ctx, job.topic, job.payload); err != nil {
			// Best-effort: the triggering operation has already
			// committed, so a failed publish is logged and dropped.
			d.log.Warn("event publish failed", "topic", job.topic, "error", err)
		}
		cancel()
		d.inflight.Done()
	}
}
