package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"posrelay/internal/adapters/wire"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

const (
	DefaultQueueSize   = 256
	DefaultSendTimeout = 5 * time.Second
)

// Message is one encoded order event ready for a broker.
type Message struct {
	Key  []byte
	Kind ports.OrderEventKind
	Body []byte
}

// Sender delivers messages to an external broker.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Relay is a ports.OrderEventPublisher backed by a Sender and a worker goroutine.
type Relay struct {
	name        string
	sender      Sender
	queue       chan Message
	sendTimeout time.Duration
	logger      *slog.Logger

	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	started sync.Once
}

type RelayOption func(*Relay)

func WithQueueSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.queue = make(chan Message, n)
		}
	}
}

func WithSendTimeout(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.sendTimeout = d
		}
	}
}

// NewRelay creates a relay. Call Start before publishing and Close on shutdown.
func NewRelay(name string, sender Sender, logger *slog.Logger, opts ...RelayOption) *Relay {
	r := &Relay{
		name:        name,
		sender:      sender,
		queue:       make(chan Message, DefaultQueueSize),
		sendTimeout: DefaultSendTimeout,
		logger:      logger.With("component", "event_relay", "sink", name),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the worker. Further calls do nothing.
func (r *Relay) Start() {
	r.started.Do(func() {
		go r.run()
	})
}

// Publish encodes and queues the event. It returns immediately.
func (r *Relay) Publish(ctx context.Context, kind ports.OrderEventKind, o *order.Order) {
	body, err := json.Marshal(wire.OrderEvent{Type: kind.String(), Order: wire.Order(o)})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to encode order event", "event", kind.String(), "error", err)
		return
	}
	msg := Message{Key: []byte(o.ID().String()), Kind: kind, Body: body}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.queue <- msg:
	default:
		r.logger.WarnContext(ctx, "Event queue full, dropping order event",
			"event", kind.String(), "order_id", o.ID().String())
	}
}

// Close stops accepting events, drains the queue if the worker runs, and
// closes the sender.
func (r *Relay) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	started := true
	r.started.Do(func() { started = false })
	if started {
		<-r.done
	}
	return r.sender.Close()
}

func (r *Relay) run() {
	defer close(r.done)
	for msg := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.sendTimeout)
		if err := r.sender.Send(ctx, msg); err != nil {
			r.logger.ErrorContext(ctx, "Failed to relay order event",
				"event", msg.Kind.String(), "key", string(msg.Key), "error", err)
		}
		cancel()
	}
}
