package sse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"posrelay/internal/adapters/wire"
	"posrelay/internal/core/domain/model/kernel"
)

const (
	DefaultKeepAliveInterval = 25 * time.Second
	DefaultBufferSize        = 64
)

var ErrBroadcasterClosed = errors.New("broadcaster is closed")

// KeepAliveScheduler runs fn every interval until the returned cancel is called.
type KeepAliveScheduler interface {
	Every(interval time.Duration, fn func()) (cancel func(), err error)
}

// Subscription is one viewer's view of the event stream. Frames is closed
// when the broadcaster drops the subscription.
type Subscription struct {
	id     kernel.UUID
	frames chan []byte
}

func (s *Subscription) ID() kernel.UUID {
	return s.id
}

func (s *Subscription) Frames() <-chan []byte {
	return s.frames
}

type subscriber struct {
	sub           *Subscription
	stopKeepAlive func()
}

// Broadcaster keeps the registry of live subscriptions. All sends happen under
// mu, so a frame is never written to a closed channel.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[kernel.UUID]*subscriber
	closed      bool

	scheduler  KeepAliveScheduler
	interval   time.Duration
	bufferSize int
	logger     *slog.Logger
}

type Option func(*Broadcaster)

// WithKeepAlive schedules heartbeats through scheduler. Without it no
// heartbeats are sent.
func WithKeepAlive(scheduler KeepAliveScheduler, interval time.Duration) Option {
	return func(b *Broadcaster) {
		b.scheduler = scheduler
		if interval > 0 {
			b.interval = interval
		}
	}
}

// WithBufferSize sets how many frames a subscriber may lag behind before it
// is dropped. The connected frame counts against it.
func WithBufferSize(n int) Option {
	return func(b *Broadcaster) {
		if n > 0 {
			b.bufferSize = n
		}
	}
}

func NewBroadcaster(logger *slog.Logger, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		subscribers: make(map[kernel.UUID]*subscriber),
		interval:    DefaultKeepAliveInterval,
		bufferSize:  DefaultBufferSize,
		logger:      logger.With("component", "sse_broadcaster"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a viewer. The connected event is already queued when
// the subscription becomes visible to publishers, so it is always first.
func (b *Broadcaster) Subscribe() (*Subscription, error) {
	connected, err := EncodeEvent(EventConnected, wire.Connected{OK: true})
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		id:     kernel.NewUUID(),
		frames: make(chan []byte, b.bufferSize),
	}
	sub.frames <- connected

	stop := func() {}
	if b.scheduler != nil {
		cancel, err := b.scheduler.Every(b.interval, func() { b.keepAlive(sub.id) })
		if err != nil {
			return nil, fmt.Errorf("schedule keep-alive: %w", err)
		}
		stop = cancel
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		stop()
		return nil, ErrBroadcasterClosed
	}
	b.subscribers[sub.id] = &subscriber{sub: sub, stopKeepAlive: stop}
	count := len(b.subscribers)
	b.mu.Unlock()

	b.logger.DebugContext(context.Background(), "Viewer subscribed", "subscription", sub.id.String(), "viewers", count)
	return sub, nil
}

// Unsubscribe drops the subscription. Unknown or already removed ids are ignored.
func (b *Broadcaster) Unsubscribe(id kernel.UUID) {
	b.mu.Lock()
	stop, ok := b.removeLocked(id)
	count := len(b.subscribers)
	b.mu.Unlock()

	if !ok {
		return
	}
	stop()
	b.logger.DebugContext(context.Background(), "Viewer unsubscribed", "subscription", id.String(), "viewers", count)
}

// Publish sends a named event to every subscriber without blocking. It never
// fails from the caller's point of view; encoding errors are logged.
func (b *Broadcaster) Publish(name string, payload any) {
	frame, err := EncodeEvent(name, payload)
	if err != nil {
		b.logger.ErrorContext(context.Background(), "Failed to encode event", "event", name, "error", err)
		return
	}
	b.broadcast(frame)
}

// Count returns the number of live subscriptions.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close drops every subscription and rejects new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	stops := make([]func(), 0, len(b.subscribers))
	for id := range b.subscribers {
		if stop, ok := b.removeLocked(id); ok {
			stops = append(stops, stop)
		}
	}
	b.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}

func (b *Broadcaster) broadcast(frame []byte) {
	var slow []kernel.UUID

	b.mu.Lock()
	for id, s := range b.subscribers {
		select {
		case s.sub.frames <- frame:
		default:
			slow = append(slow, id)
		}
	}
	stops := make([]func(), 0, len(slow))
	for _, id := range slow {
		if stop, ok := b.removeLocked(id); ok {
			stops = append(stops, stop)
		}
	}
	b.mu.Unlock()

	for i, stop := range stops {
		stop()
		b.logger.WarnContext(context.Background(), "Dropped slow viewer", "subscription", slow[i].String())
	}
}

// keepAlive runs on the scheduler. A subscription removed in the meantime has
// no record, so nothing is written.
func (b *Broadcaster) keepAlive(id kernel.UUID) {
	b.mu.Lock()
	s, ok := b.subscribers[id]
	if !ok {
		b.mu.Unlock()
		return
	}

	select {
	case s.sub.frames <- heartbeatFrame:
		b.mu.Unlock()
		return
	default:
	}

	stop, _ := b.removeLocked(id)
	b.mu.Unlock()

	stop()
	b.logger.WarnContext(context.Background(), "Dropped slow viewer", "subscription", id.String())
}

// removeLocked deletes the record and closes its channel. b.mu must be held.
func (b *Broadcaster) removeLocked(id kernel.UUID) (func(), bool) {
	s, ok := b.subscribers[id]
	if !ok {
		return nil, false
	}
	delete(b.subscribers, id)
	close(s.sub.frames)
	return s.stopKeepAlive, true
}
