// Package events delivers customer lifecycle events to an audit sink.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
)

// ErrPublisherClosed is returned by Close when called twice.
var ErrPublisherClosed = errors.New("event publisher already closed")

// Sink delivers one event. Implementations must honour ctx.
type Sink interface {
	Send(ctx context.Context, event domain.CustomerEvent) error
}

// Publisher hands events to a Sink on a background worker so callers never wait
// on delivery. Events that do not fit in the buffer are dropped with a warning.
type Publisher struct {
	sink        Sink
	logger      *slog.Logger
	sendTimeout time.Duration
	queue       chan domain.CustomerEvent

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
	start  sync.Once
}

// PublisherOption is a functional option for configuring the Publisher
type PublisherOption func(*Publisher)

// WithBufferSize sets how many events may wait for delivery.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.queue = make(chan domain.CustomerEvent, n)
		}
	}
}

// WithSendTimeout bounds each delivery attempt.
func WithSendTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		if d > 0 {
			p.sendTimeout = d
		}
	}
}

// WithLogger sets the logger used for delivery failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher in front of sink. Call Start before publishing.
func NewPublisher(sink Sink, options ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:        sink,
		logger:      slog.Default(),
		sendTimeout: 5 * time.Second,
		queue:       make(chan domain.CustomerEvent, 256),
		done:        make(chan struct{}),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// Start launches the delivery worker. Further calls are no-ops.
func (p *Publisher) Start() {
	p.start.Do(func() {
		go p.run()
	})
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.queue {
		p.deliver(event)
	}
}

func (p *Publisher) deliver(event domain.CustomerEvent) {
	// Delivery is detached from the request that produced the event
	ctx, cancel := context.WithTimeout(context.Background(), p.sendTimeout)
	defer cancel()

	if err := p.sink.Send(ctx, event); err != nil {
		p.logger.Error("Failed to deliver customer event",
			slog.String("event_type", string(event.EventType)),
			slog.String("customer_id", event.CustomerID),
			slog.String("error", err.Error()))
		return
	}
	p.logger.Debug("Customer event delivered",
		slog.String("event_type", string(event.EventType)),
		slog.String("customer_id", event.CustomerID))
}

// Publish enqueues event without blocking.
func (p *Publisher) Publish(event domain.CustomerEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("Customer event dropped, publisher closed", slog.String("customer_id", event.CustomerID))
		return
	}
	select {
	case p.queue <- event:
	default:
		p.logger.Warn("Customer event dropped, buffer full",
			slog.String("event_type", string(event.EventType)),
			slog.String("customer_id", event.CustomerID))
	}
}

// Close stops accepting events and waits until the queued ones are delivered or ctx ends.
func (p *Publisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	// Drain the queue even if Start was never called
	p.start.Do(func() {
		go p.run()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
